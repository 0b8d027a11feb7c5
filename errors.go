package musicxml

import (
	"errors"

	"github.com/simonhull/musicxml/internal/types"
)

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exporting from internal/types to maintain public API.
type UnsupportedFormatError = types.UnsupportedFormatError

// MalformedDocumentError is an alias to types.MalformedDocumentError.
// Re-exporting from internal/types to maintain public API.
type MalformedDocumentError = types.MalformedDocumentError

// ArchiveError is an alias to types.ArchiveError.
// Re-exporting from internal/types to maintain public API.
type ArchiveError = types.ArchiveError

// UnsupportedExportError is an alias to types.UnsupportedExportError.
// Re-exporting from internal/types to maintain public API.
type UnsupportedExportError = types.UnsupportedExportError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to maintain public API.
type Warning = types.Warning

// ErrChordTooSmall is returned by NewChord when given fewer than two notes.
var ErrChordTooSmall = types.ErrChordTooSmall

// ErrStrictParsing is returned by Open when WithStrictParsing is set and the
// score produced a warning.
var ErrStrictParsing = errors.New("strict parsing failed")
