package uncompressed

import (
	"errors"
	"strings"
	"testing"

	"github.com/simonhull/musicxml/internal/registry"
	"github.com/simonhull/musicxml/internal/types"
)

func TestLoad(t *testing.T) {
	src := `<?xml version="1.0"?><score-partwise><work><work-title>Air</work-title></work></score-partwise>`

	loaded, err := (&loader{}).Load(strings.NewReader(src), int64(len(src)), "air.musicxml", registry.LoadConfig{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Root.Name != "score-partwise" {
		t.Errorf("Root.Name = %q, want score-partwise", loaded.Root.Name)
	}
	if loaded.RootFile != "" {
		t.Errorf("RootFile = %q, want empty", loaded.RootFile)
	}
	if title, _ := loaded.Root.TextOf("work-title"); title != "Air" {
		t.Errorf("work-title = %q, want Air", title)
	}
}

func TestLoad_Malformed(t *testing.T) {
	src := `<score-partwise><part>`

	_, err := (&loader{}).Load(strings.NewReader(src), int64(len(src)), "broken.xml", registry.LoadConfig{})

	var malformed *types.MalformedDocumentError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedDocumentError, got %T: %v", err, err)
	}
	if malformed.Path != "broken.xml" {
		t.Errorf("Path = %q, want broken.xml", malformed.Path)
	}
}

func TestLoad_SizeLimit(t *testing.T) {
	src := `<score-partwise></score-partwise>`

	_, err := (&loader{}).Load(strings.NewReader(src), int64(len(src)), "big.xml", registry.LoadConfig{MaxDocumentSize: 8})

	var malformed *types.MalformedDocumentError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedDocumentError, got %T: %v", err, err)
	}
}

func TestRegistered(t *testing.T) {
	if registry.Get(types.FormatMusicXML) == nil {
		t.Error("no loader registered for MusicXML")
	}
}
