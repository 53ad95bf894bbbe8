package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/schemaview/internal/base"
)

func tasksBase(name string) *base.Base {
	return &base.Base{Tables: []base.Table{{ID: "tblTasks", Name: name}}}
}

func TestStore_UpdateAndSnapshot(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update("schema.toml", tasksBase("Tasks"), nil)

	snap := s.Snapshot()
	if !snap.HasBase() || snap.Base.Tables[0].Name != "Tasks" {
		t.Fatalf("snapshot base = %#v, want Tasks", snap.Base)
	}
	if snap.Source != "schema.toml" {
		t.Fatalf("Source = %q, want schema.toml", snap.Source)
	}
	if snap.LastLoaded.Before(before) {
		t.Fatalf("LastLoaded = %v, want >= %v", snap.LastLoaded, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
	if s.Base() != snap.Base {
		t.Fatalf("Base() = %p, want %p", s.Base(), snap.Base)
	}
}

func TestStore_UpdateErrorKeepsPreviousBase(t *testing.T) {
	var s Store

	s.Update("schema.toml", tasksBase("Tasks"), nil)
	prev := s.Snapshot()

	origErr := errors.New("boom")
	s.Update("schema.toml", nil, origErr)

	snap := s.Snapshot()
	if snap.Base != prev.Base {
		t.Fatalf("base changed on error: got %p want %p", snap.Base, prev.Base)
	}
	if !snap.LastLoaded.Equal(prev.LastLoaded) {
		t.Fatalf("LastLoaded changed on error: got %v want %v", snap.LastLoaded, prev.LastLoaded)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if s.Snapshot().IsStale() {
		t.Fatal("IsStale() = true, want false with 0 failures")
	}

	s.Update("", nil, errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsStale() {
		t.Fatalf("after 1 failure: failures=%d stale=%v, want 1 false", snap.ConsecutiveFailures, snap.IsStale())
	}

	s.Update("", nil, errors.New("fail 2"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsStale() {
		t.Fatalf("after 2 failures: failures=%d stale=%v, want 2 true", snap.ConsecutiveFailures, snap.IsStale())
	}

	s.Update("", tasksBase("Tasks"), nil)
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsStale() {
		t.Fatalf("after success: failures=%d stale=%v, want 0 false", snap.ConsecutiveFailures, snap.IsStale())
	}
}

func TestStore_NotifiesOnlyOnStructuralChange(t *testing.T) {
	var s Store

	schemaHits, statusHits := 0, 0
	s.Watch([]string{KeySchema}, func() { schemaHits++ })
	s.Watch([]string{KeyStatus}, func() { statusHits++ })

	s.Update("a", tasksBase("Tasks"), nil)
	if schemaHits != 1 || statusHits != 1 {
		t.Fatalf("first load: schema=%d status=%d, want 1 1", schemaHits, statusHits)
	}

	// Same structure, new value: no schema signal.
	s.Update("a", tasksBase("Tasks"), nil)
	if schemaHits != 1 || statusHits != 2 {
		t.Fatalf("identical reload: schema=%d status=%d, want 1 2", schemaHits, statusHits)
	}

	s.Update("a", tasksBase("Chores"), nil)
	if schemaHits != 2 {
		t.Fatalf("rename: schema=%d, want 2", schemaHits)
	}

	s.Update("a", nil, errors.New("boom"))
	if schemaHits != 2 || statusHits != 4 {
		t.Fatalf("failure: schema=%d status=%d, want 2 4", schemaHits, statusHits)
	}
}
