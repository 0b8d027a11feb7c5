package musicxml

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestUnsupportedFormatError_Error(t *testing.T) {
	err := &UnsupportedFormatError{
		Path:   "tune.abc",
		Reason: "not a MusicXML document or archive",
	}

	msg := err.Error()
	for _, substr := range []string{"tune.abc", "not a MusicXML document or archive", "unsupported format"} {
		if !strings.Contains(msg, substr) {
			t.Errorf("error message %q should contain %q", msg, substr)
		}
	}
}

func TestMalformedDocumentError(t *testing.T) {
	err := &MalformedDocumentError{Path: "broken.musicxml", Err: io.ErrUnexpectedEOF}

	msg := err.Error()
	if !strings.Contains(msg, "broken.musicxml") || !strings.Contains(msg, "malformed document") {
		t.Errorf("unexpected message: %s", msg)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("MalformedDocumentError should unwrap to its cause")
	}
}

func TestArchiveError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ArchiveError
		expected string
	}{
		{
			name:     "with entry",
			err:      &ArchiveError{Path: "score.mxl", Entry: "META-INF/container.xml", Reason: "manifest lists no root file"},
			expected: "score.mxl: archive entry META-INF/container.xml: manifest lists no root file",
		},
		{
			name:     "without entry",
			err:      &ArchiveError{Path: "score.mxl", Reason: "archive has no entries"},
			expected: "score.mxl: archive: archive has no entries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWarning_String(t *testing.T) {
	tests := []struct {
		name string
		w    Warning
		want string
	}{
		{name: "score level", w: Warning{Stage: "layout", Message: "no parts"}, want: "layout: no parts"},
		{name: "part level", w: Warning{Stage: "measure", Message: "bad", Part: "P1"}, want: "measure (part P1): bad"},
		{name: "measure level", w: Warning{Stage: "pitch", Message: "no octave", Part: "P1", Measure: "4"}, want: "pitch (part P1, measure 4): no octave"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
