package types

import (
	"errors"
	"fmt"
)

// ErrChordTooSmall is returned when a chord is built from fewer than two notes.
var ErrChordTooSmall = errors.New("chord needs at least two notes")

// UnsupportedFormatError is returned when the file is neither MusicXML nor a
// compressed MusicXML archive.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// MalformedDocumentError is returned when the markup cannot be parsed.
type MalformedDocumentError struct {
	Path string
	Err  error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("%s: malformed document: %v", e.Path, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// ArchiveError is returned when a compressed archive cannot be resolved to
// a root document (bad zip, missing root file, entry too large).
type ArchiveError struct {
	Path   string
	Entry  string
	Reason string
}

func (e *ArchiveError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("%s: archive entry %s: %s", e.Path, e.Entry, e.Reason)
	}
	return fmt.Sprintf("%s: archive: %s", e.Path, e.Reason)
}

// Warning represents a non-fatal issue encountered while building the model.
//
// Warnings indicate data that was missing or unreadable but did not stop
// the transformation. Examples include:
//   - A note without a step or octave (its pitch is unresolved)
//   - A duration that is not a number (treated as 0)
//   - A time-wise score (no parts are produced)
//   - An archive listing more than one root file
type Warning struct {
	// Stage where the warning occurred
	Stage string // "archive", "layout", "measure", "pitch", "duration"

	// Warning message
	Message string

	// Part identifier, if the issue is inside a part
	Part string

	// Measure number text, if the issue is inside a measure
	Measure string
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	switch {
	case w.Measure != "":
		return fmt.Sprintf("%s (part %s, measure %s): %s", w.Stage, w.Part, w.Measure, w.Message)
	case w.Part != "":
		return fmt.Sprintf("%s (part %s): %s", w.Stage, w.Part, w.Message)
	default:
		return fmt.Sprintf("%s: %s", w.Stage, w.Message)
	}
}

// UnsupportedExportError indicates no exporter is registered for a target.
type UnsupportedExportError struct {
	Reason string
	Target ExportFormat
}

func (e *UnsupportedExportError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("export not supported for %s: %s", e.Target, e.Reason)
	}
	return fmt.Sprintf("export not supported for %s", e.Target)
}
