package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.NATSSubject != defaultNATSSubject {
		t.Fatalf("NATSSubject = %q, want %q", cfg.NATSSubject, defaultNATSSubject)
	}

	wantLogPath, err := expandPath(defaultLogPath)
	if err != nil {
		t.Fatalf("expandPath(defaultLogPath) returned error: %v", err)
	}
	if cfg.LogPath != wantLogPath {
		t.Fatalf("LogPath = %q, want %q", cfg.LogPath, wantLogPath)
	}
	if cfg.SchemaPath != "" || cfg.NATSURL != "" || cfg.PollInterval != 0 {
		t.Fatalf("optional settings not empty: %+v", cfg)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
schema_path = "  ~/schemas/work.toml  "
nats_url = " nats://127.0.0.1:4222 "
nats_subject = "team.schema.>"
log_path = "~/logs/sv.log"
poll_seconds = 15
initial_table = " Tasks "
initial_view = "All tasks"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := filepath.Join(home, "schemas", "work.toml"); cfg.SchemaPath != want {
		t.Fatalf("SchemaPath = %q, want %q", cfg.SchemaPath, want)
	}
	if cfg.NATSURL != "nats://127.0.0.1:4222" {
		t.Fatalf("NATSURL = %q, want %q", cfg.NATSURL, "nats://127.0.0.1:4222")
	}
	if cfg.NATSSubject != "team.schema.>" {
		t.Fatalf("NATSSubject = %q, want %q", cfg.NATSSubject, "team.schema.>")
	}
	if !strings.HasPrefix(cfg.LogPath, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", cfg.LogPath, home)
	}
	if cfg.PollInterval != 15*time.Second {
		t.Fatalf("PollInterval = %s, want 15s", cfg.PollInterval)
	}
	if cfg.InitialTable != "Tasks" || cfg.InitialView != "All tasks" {
		t.Fatalf("initial selection = (%q, %q), want (Tasks, All tasks)", cfg.InitialTable, cfg.InitialView)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
nats_subject = "   "
log_path = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.NATSSubject != defaultNATSSubject {
		t.Fatalf("NATSSubject = %q, want %q", cfg.NATSSubject, defaultNATSSubject)
	}
	wantLogPath, err := expandPath(defaultLogPath)
	if err != nil {
		t.Fatalf("expandPath(defaultLogPath) returned error: %v", err)
	}
	if cfg.LogPath != wantLogPath {
		t.Fatalf("LogPath = %q, want %q", cfg.LogPath, wantLogPath)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`schema_path = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_NegativePollFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("poll_seconds = -1\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load returned nil error, want poll_seconds error")
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Fatalf("Validate without schema path returned nil, want error")
	}
	if err := (Config{SchemaPath: "/tmp/s.toml", PollInterval: -time.Second}).Validate(); err == nil {
		t.Fatalf("Validate with negative poll returned nil, want error")
	}
	if err := (Config{SchemaPath: "/tmp/s.toml"}).Validate(); err != nil {
		t.Fatalf("Validate returned %v, want nil", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
	if exported := ExpandPath("~/a/b"); exported != want {
		t.Fatalf("ExpandPath = %q, want %q", exported, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
