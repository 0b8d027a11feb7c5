package musicxml

import (
	"io"

	"github.com/simonhull/musicxml/internal/types"
)

// Format is an alias to types.Format.
// Re-exporting from internal/types to maintain public API.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown  = types.FormatUnknown
	FormatMusicXML = types.FormatMusicXML
	FormatMXL      = types.FormatMXL
)

// ExportFormat is an alias to types.ExportFormat.
type ExportFormat = types.ExportFormat

// Re-export all export targets.
const (
	ExportUnknown = types.ExportUnknown
	ExportMIDI    = types.ExportMIDI
	ExportJSON    = types.ExportJSON
)

// DetectFormat is a wrapper around types.DetectFormat.
// Maintains the public API while delegating to internal implementation.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}

// ExportFormatFor picks an export target from a file name's extension:
// .mid and .midi select MIDI, .json selects JSON.
func ExportFormatFor(path string) ExportFormat {
	return types.ExportFormatFor(path)
}
