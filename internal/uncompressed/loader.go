// Package uncompressed loads plain MusicXML documents.
package uncompressed

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/simonhull/musicxml/internal/document"
	"github.com/simonhull/musicxml/internal/registry"
	"github.com/simonhull/musicxml/internal/types"
)

// loader implements registry.DocumentLoader for .musicxml and .xml files.
type loader struct{}

// Load parses the whole file as one document.
func (l *loader) Load(r io.ReaderAt, size int64, path string, cfg registry.LoadConfig) (*registry.Loaded, error) {
	if cfg.MaxDocumentSize > 0 && size > cfg.MaxDocumentSize {
		return nil, &types.MalformedDocumentError{
			Path: path,
			Err:  fmt.Errorf("document is %d bytes, limit is %d", size, cfg.MaxDocumentSize),
		}
	}

	root, err := document.Parse(io.NewSectionReader(r, 0, size))
	if err != nil {
		return nil, &types.MalformedDocumentError{Path: path, Err: err}
	}

	if cfg.Logger != nil {
		cfg.Logger.Debug("parsed document",
			zap.String("path", path),
			zap.String("root", root.Name),
			zap.Int64("size", size))
	}

	return &registry.Loaded{Root: root}, nil
}

func init() {
	registry.Register(types.FormatMusicXML, &loader{})
}
