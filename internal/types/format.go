package types

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/simonhull/musicxml/internal/binary"
)

// Format represents the detected container format of a score file.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota // Unknown
	// FormatMusicXML represents an uncompressed MusicXML document.
	FormatMusicXML // MusicXML
	// FormatMXL represents a compressed MusicXML archive.
	FormatMXL // MXL
)

// String returns the display name of the format.
func (f Format) String() string {
	switch f {
	case FormatMusicXML:
		return "MusicXML"
	case FormatMXL:
		return "MXL"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatMusicXML:
		return []string{".musicxml", ".xml"}
	case FormatMXL:
		return []string{".mxl"}
	default:
		return nil
	}
}

// ExportFormat identifies a target the model can be written to.
type ExportFormat int

const (
	// ExportUnknown is the zero value and has no exporter.
	ExportUnknown ExportFormat = iota
	// ExportMIDI writes a Standard MIDI File.
	ExportMIDI
	// ExportJSON writes the model as JSON.
	ExportJSON
)

// String returns the display name of the export target.
func (e ExportFormat) String() string {
	switch e {
	case ExportMIDI:
		return "MIDI"
	case ExportJSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// ExportFormatFor picks an export target from a file name's extension.
func ExportFormatFor(path string) ExportFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mid", ".midi":
		return ExportMIDI
	case ".json":
		return ExportJSON
	default:
		return ExportUnknown
	}
}

const (
	zipLocalHeader = uint32(0x04034b50) // "PK\x03\x04"
	zipEmptyMarker = uint32(0x06054b50) // "PK\x05\x06", an empty archive
	sniffLength    = 512
)

// DetectFormat determines the score format by examining the leading bytes.
//
// A ZIP signature means a compressed archive. A byte order mark, or a '<'
// as the first non-whitespace byte, means an uncompressed document. The
// path is only used for error messages; extensions are not trusted.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 4 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	sig, err := binary.ReadLE[uint32](sr, 0, "file signature")
	if err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	if sig == zipLocalHeader || sig == zipEmptyMarker {
		return FormatMXL, nil
	}

	bom, err := binary.ReadBE[uint16](sr, 0, "byte order mark")
	if err == nil && (bom == 0xFEFF || bom == 0xFFFE || bom == 0xEFBB) {
		return FormatMusicXML, nil
	}

	head, err := sr.Head(sniffLength, "document prefix")
	if err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	trimmed := strings.TrimLeft(string(head), " \t\r\n")
	if strings.HasPrefix(trimmed, "<") {
		return FormatMusicXML, nil
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "not a MusicXML document or archive",
	}
}
