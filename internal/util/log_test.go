package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerLevel(t *testing.T) {
	logger := NewLogger("debug")
	if logger.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %s", logger.GetLevel())
	}

	logger = NewLogger("invalid")
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info fallback, got %s", logger.GetLevel())
	}
}

func TestNewAuditLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	logger, closer, err := NewAuditLogger("info", dir, "audit.jsonl")
	if err != nil {
		t.Fatalf("NewAuditLogger error: %v", err)
	}
	logger.Info().Str("pair", "BTC-USD").Msg("tick")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "audit.jsonl"))
	if err != nil {
		t.Fatalf("read audit file: %v", err)
	}
	if !strings.Contains(string(data), "BTC-USD") {
		t.Fatalf("expected audit line in file, got %s", data)
	}
}

func TestNewAuditLoggerAppends(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		logger, closer, err := NewAuditLogger("info", dir, "audit.jsonl")
		if err != nil {
			t.Fatalf("NewAuditLogger error: %v", err)
		}
		logger.Info().Int("run", i).Msg("tick")
		closer.Close()
	}
	data, err := os.ReadFile(filepath.Join(dir, "audit.jsonl"))
	if err != nil {
		t.Fatalf("read audit file: %v", err)
	}
	if strings.Count(string(data), "tick") != 2 {
		t.Fatalf("expected two appended lines, got %s", data)
	}
}
