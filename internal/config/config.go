package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures schemaview's settings.
type Config struct {
	SchemaPath   string
	NATSURL      string
	NATSSubject  string
	LogPath      string
	PollInterval time.Duration
	InitialTable string
	InitialView  string
}

const (
	defaultConfigPath  = "~/.config/schemaview/config.toml"
	defaultLogPath     = "~/.local/state/schemaview/schemaview.log"
	defaultNATSSubject = "schemaview.>"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		LogPath:     mustExpand(defaultLogPath),
		NATSSubject: defaultNATSSubject,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		SchemaPath   string `toml:"schema_path"`
		NATSURL      string `toml:"nats_url"`
		NATSSubject  string `toml:"nats_subject"`
		LogPath      string `toml:"log_path"`
		PollSeconds  int    `toml:"poll_seconds"`
		InitialTable string `toml:"initial_table"`
		InitialView  string `toml:"initial_view"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if schema := strings.TrimSpace(raw.SchemaPath); schema != "" {
		cfg.SchemaPath = mustExpand(schema)
	}
	cfg.NATSURL = strings.TrimSpace(raw.NATSURL)
	if subject := strings.TrimSpace(raw.NATSSubject); subject != "" {
		cfg.NATSSubject = subject
	}
	if logPath := strings.TrimSpace(raw.LogPath); logPath != "" {
		cfg.LogPath = mustExpand(logPath)
	}
	if raw.PollSeconds < 0 {
		return Config{}, fmt.Errorf("parse config: poll_seconds must not be negative (got %d)", raw.PollSeconds)
	}
	cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	cfg.InitialTable = strings.TrimSpace(raw.InitialTable)
	cfg.InitialView = strings.TrimSpace(raw.InitialView)

	return cfg, nil
}

// Validate reports settings that make the viewer unable to start.
func (c Config) Validate() error {
	if strings.TrimSpace(c.SchemaPath) == "" {
		return errors.New("no schema source: set schema_path in the config file or pass --schema")
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("poll interval must not be negative (got %s)", c.PollInterval)
	}
	return nil
}

// ExpandPath resolves a user-supplied path the same way config values are.
func ExpandPath(path string) string {
	return mustExpand(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
