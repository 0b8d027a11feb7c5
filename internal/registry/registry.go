// Package registry manages format-specific document loaders and model exporters.
package registry

import (
	"io"

	"go.uber.org/zap"

	"github.com/simonhull/musicxml/internal/document"
	"github.com/simonhull/musicxml/internal/types"
)

// LoadConfig carries the caller's limits and logger into a loader.
type LoadConfig struct {
	// MaxDocumentSize bounds the bytes of markup a loader will read.
	// Zero means no limit.
	MaxDocumentSize int64

	// Logger receives debug output. Never nil when passed by the caller.
	Logger *zap.Logger
}

// Loaded is the result of loading a document: the parsed root element
// plus anything the loader learned on the way.
type Loaded struct {
	Root *document.Node

	// RootFile is the archive entry the document was read from, or "" for
	// an uncompressed document.
	RootFile string

	Warnings []types.Warning
}

// DocumentLoader is the interface all format loaders implement.
type DocumentLoader interface {
	// Load reads and parses the document held in r.
	Load(r io.ReaderAt, size int64, path string, cfg LoadConfig) (*Loaded, error)
}

// Exporter is the interface model exporters implement.
type Exporter interface {
	// Export writes the score to w.
	Export(w io.Writer, score *types.Score) error
}

// Validator is an optional interface for exporters that can check their
// own output against the score it was written from.
type Validator interface {
	// Validate reads exported data back and compares it with score.
	Validate(r io.Reader, score *types.Score) error
}

// loaders maps formats to their loaders.
var loaders = make(map[types.Format]DocumentLoader)

// exporters maps export targets to their exporters.
var exporters = make(map[types.ExportFormat]Exporter)

// Register registers a loader for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, loader DocumentLoader) {
	loaders[format] = loader
}

// Get returns the loader for a given format.
// Returns nil if no loader is registered for the format.
func Get(format types.Format) DocumentLoader {
	return loaders[format]
}

// RegisterExporter registers an exporter for a target.
// This is called by exporter packages during initialization (init functions).
func RegisterExporter(target types.ExportFormat, exporter Exporter) {
	exporters[target] = exporter
}

// GetExporter returns the exporter for a given target.
// Returns nil if no exporter is registered for the target.
func GetExporter(target types.ExportFormat) Exporter {
	return exporters[target]
}
