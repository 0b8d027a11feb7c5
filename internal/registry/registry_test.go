package registry

import (
	"bytes"
	"io"
	"testing"

	"github.com/simonhull/musicxml/internal/types"
)

// mockLoader implements DocumentLoader for testing.
type mockLoader struct {
	name string
}

func (m *mockLoader) Load(r io.ReaderAt, size int64, path string, cfg LoadConfig) (*Loaded, error) {
	return &Loaded{RootFile: m.name}, nil
}

func TestRegisterAndGet(t *testing.T) {
	// Use a format that's unlikely to conflict with real registrations
	format := types.Format(999)
	loader := &mockLoader{name: "test"}

	Register(format, loader)

	got := Get(format)
	if got == nil {
		t.Fatal("Get() returned nil for registered format")
	}

	ml, ok := got.(*mockLoader)
	if !ok {
		t.Fatal("Get() returned wrong loader type")
	}
	if ml.name != "test" {
		t.Errorf("Loader name = %q, want %q", ml.name, "test")
	}
}

func TestGet_Unregistered(t *testing.T) {
	format := types.Format(998)

	if got := Get(format); got != nil {
		t.Errorf("Get() = %v for unregistered format, want nil", got)
	}
}

func TestRegister_Overwrites(t *testing.T) {
	format := types.Format(997)

	Register(format, &mockLoader{name: "first"})
	Register(format, &mockLoader{name: "second"})

	loaded, err := Get(format).Load(nil, 0, "", LoadConfig{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.RootFile != "second" {
		t.Errorf("RootFile = %q, want %q (should be overwritten)", loaded.RootFile, "second")
	}
}

// mockExporter writes the score title.
type mockExporter struct{}

func (mockExporter) Export(w io.Writer, score *types.Score) error {
	_, err := io.WriteString(w, score.Title)
	return err
}

func TestRegisterExporter(t *testing.T) {
	target := types.ExportFormat(999)
	RegisterExporter(target, mockExporter{})

	exp := GetExporter(target)
	if exp == nil {
		t.Fatal("GetExporter() returned nil for registered target")
	}

	var buf bytes.Buffer
	if err := exp.Export(&buf, &types.Score{Title: "Etude"}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if buf.String() != "Etude" {
		t.Errorf("Export() wrote %q, want Etude", buf.String())
	}

	if GetExporter(types.ExportFormat(998)) != nil {
		t.Error("GetExporter() should return nil for unregistered target")
	}
}
