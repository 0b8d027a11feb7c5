package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "", want: zapcore.InfoLevel},
		{in: "debug", want: zapcore.DebugLevel},
		{in: "WARN", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew_Console(t *testing.T) {
	logger, err := New("warn", Console)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("error should be enabled at warn level")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("loud", Console); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mxl.log")

	logger, err := New("debug", Destination(path))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("opened score", zap.String("path", "etude.mxl"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", line)
	}
	if entry["msg"] != "opened score" || entry["path"] != "etude.mxl" {
		t.Errorf("unexpected entry: %v", entry)
	}
}
