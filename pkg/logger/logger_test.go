package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pochun/chipscan/pkg/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantLevel zerolog.Level
	}{
		{name: "debug level", level: "debug", wantLevel: zerolog.DebugLevel},
		{name: "info level", level: "info", wantLevel: zerolog.InfoLevel},
		{name: "warn level", level: "warn", wantLevel: zerolog.WarnLevel},
		{name: "warning alias", level: "warning", wantLevel: zerolog.WarnLevel},
		{name: "error level", level: "error", wantLevel: zerolog.ErrorLevel},
		{name: "unknown falls back to info", level: "chatty", wantLevel: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLogLevel(tt.level); got != tt.wantLevel {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.level, got, tt.wantLevel)
			}
		})
	}
}

func TestNewIncludesEnvField(t *testing.T) {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "json",
	}

	log := New(cfg)

	// Redirect the underlying zerolog output to a buffer
	var buf bytes.Buffer
	zlog := log.Zerolog().Output(&buf)
	zlog.Info().Msg("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not JSON: %v", err)
	}

	if entry["env"] != "development" {
		t.Errorf("Expected env field to be development, got %v", entry["env"])
	}
	if entry["message"] != "hello" {
		t.Errorf("Expected message field, got %v", entry["message"])
	}
}

func TestWithFields(t *testing.T) {
	cfg := &config.Config{Env: "development", LogLevel: "debug", LogFormat: "json"}
	log := New(cfg)

	var buf bytes.Buffer
	zlog := log.WithFields(map[string]interface{}{
		"code": "2330",
		"lots": 1500,
	}).Zerolog().Output(&buf)
	zlog.Info().Msg("flow")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not JSON: %v", err)
	}

	if entry["code"] != "2330" {
		t.Errorf("Expected code field, got %v", entry["code"])
	}
}

func TestWithError(t *testing.T) {
	cfg := &config.Config{Env: "development", LogLevel: "debug", LogFormat: "json"}
	log := New(cfg)

	var buf bytes.Buffer
	zlog := log.WithError(errors.New("upstream timeout")).Zerolog().Output(&buf)
	zlog.Error().Msg("fetch failed")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not JSON: %v", err)
	}

	if entry["error"] != "upstream timeout" {
		t.Errorf("Expected error field, got %v", entry["error"])
	}
}

func TestNewNopDiscards(t *testing.T) {
	log := NewNop()
	// Must not panic or write anywhere
	log.WithField("k", "v").Info("discarded")
	log.Errorf("discarded %d", 42)
}
