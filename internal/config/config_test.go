package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ProjectFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, FileName, `{
		// quieter in CI
		"log_level": "warn",
		"strict": true,
		"backup": ".bak",
	}`)

	cfg, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.LogLevel = "warn"
	want.Strict = true
	want.Backup = ".bak"
	want.Source = path
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, FileName, `{"addr": ":1"}`)
	writeConfig(t, dir, "other.json", `{"addr": ":9000", "validate": true}`)

	cfg, err := Load(dir, "other.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != ":9000" || !cfg.Validate {
		t.Errorf("explicit file not applied: %+v", cfg)
	}
	if cfg.Source != filepath.Join(dir, "other.json") {
		t.Errorf("Source = %q", cfg.Source)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		explicit string
		wantErr  error
	}{
		{name: "explicit file missing", explicit: "missing.json", wantErr: ErrFileNotFound},
		{name: "not JSONC", content: `{"log_level": `, wantErr: ErrInvalid},
		{name: "unknown field", content: `{"colour": "red"}`, wantErr: ErrInvalid},
		{name: "bad level", content: `{"log_level": "loud"}`, wantErr: ErrInvalid},
		{name: "negative size", content: `{"max_document_size": -1}`, wantErr: ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			if tt.content != "" {
				writeConfig(t, dir, FileName, tt.content)
			}

			_, err := Load(dir, tt.explicit)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
