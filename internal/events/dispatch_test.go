package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"
)

type selection struct{ table, view string }

type recorder struct {
	mu       sync.Mutex
	reloads  int
	selected []selection
}

func (r *recorder) dispatcher() *Dispatcher {
	return &Dispatcher{
		Reload: func(context.Context) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.reloads++
			return nil
		},
		Select: func(table, view string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.selected = append(r.selected, selection{table, view})
		},
	}
}

func (r *recorder) snapshot() (int, []selection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reloads, append([]selection(nil), r.selected...)
}

func TestDispatcher_Handle(t *testing.T) {
	r := &recorder{}
	d := r.dispatcher()
	ctx := context.Background()

	if err := d.Handle(ctx, Message{Subject: TopicSchemaChanged}); err != nil {
		t.Fatalf("schema changed: %v", err)
	}
	data, _ := json.Marshal(SelectionChanged{TableID: "tblTasks", ViewID: "viwDue"})
	if err := d.Handle(ctx, Message{Subject: TopicSelectionChanged, Data: data}); err != nil {
		t.Fatalf("selection changed: %v", err)
	}
	if err := d.Handle(ctx, Message{Subject: "schemaview.other"}); err != nil {
		t.Fatalf("unknown subject: %v", err)
	}

	reloads, selected := r.snapshot()
	if reloads != 1 {
		t.Errorf("reloads = %d, want 1", reloads)
	}
	if len(selected) != 1 || selected[0] != (selection{"tblTasks", "viwDue"}) {
		t.Errorf("selected = %+v, want [{tblTasks viwDue}]", selected)
	}
}

func TestDispatcher_HandleRejectsBadSelection(t *testing.T) {
	d := (&recorder{}).dispatcher()
	ctx := context.Background()

	if err := d.Handle(ctx, Message{Subject: TopicSelectionChanged, Data: []byte("{")}); err == nil {
		t.Error("expected error for malformed payload")
	}
	if err := d.Handle(ctx, Message{Subject: TopicSelectionChanged, Data: []byte(`{"view_id":"v"}`)}); err == nil {
		t.Error("expected error for missing table_id")
	}
}

func TestDispatcher_ReloadErrorIsReturned(t *testing.T) {
	boom := errors.New("boom")
	d := &Dispatcher{Reload: func(context.Context) error { return boom }}
	if err := d.Handle(context.Background(), Message{Subject: TopicSchemaChanged}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestDispatcher_RunOverNATS(t *testing.T) {
	url := startTestNATS(t)

	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	defer pub.Close()

	sub, err := NewNATSSubscriber(url)
	if err != nil {
		t.Fatalf("creating subscriber: %v", err)
	}
	defer sub.Close()

	ch, cancel, err := sub.Subscribe(TopicAll)
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	defer cancel()

	r := &recorder{}
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.dispatcher().Run(ctx, ch)
	}()

	if err := pub.Publish(ctx, TopicSchemaChanged, SchemaChanged{Source: "test"}); err != nil {
		t.Fatalf("publishing: %v", err)
	}
	if err := pub.Publish(ctx, TopicSelectionChanged, SelectionChanged{TableID: "tblTasks"}); err != nil {
		t.Fatalf("publishing: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		reloads, selected := r.snapshot()
		if reloads == 1 && len(selected) == 1 {
			if selected[0] != (selection{"tblTasks", ""}) {
				t.Errorf("selected = %+v", selected[0])
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("reloads = %d, selected = %+v after timeout", reloads, selected)
		}
		time.Sleep(10 * time.Millisecond)
	}

	stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
