package musicxml

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/musicxml/internal/document"
	"github.com/simonhull/musicxml/internal/registry"
	"github.com/simonhull/musicxml/internal/types"

	// Loaders and exporters register themselves in init.
	_ "github.com/simonhull/musicxml/internal/jsonexport"
	_ "github.com/simonhull/musicxml/internal/midiexport"
	_ "github.com/simonhull/musicxml/internal/mxl"
	_ "github.com/simonhull/musicxml/internal/uncompressed"
)

// File represents an opened score file and its fully built model.
//
// Opening reads the whole document: the returned Score holds no
// reference to the file and needs no further I/O, so there is nothing to
// close.
//
//	file, err := musicxml.Open("etude.mxl")
//	if err != nil {
//		return err
//	}
//	fmt.Println(file.Score.Title)
type File struct {
	// Path to the score file
	Path string

	// Detected container format (MusicXML or MXL)
	Format Format

	// File size in bytes
	Size int64

	// Archive entry the score was read from; empty for plain documents
	RootFile string

	// The score model
	Score *Score

	// Warnings from loading and from building the model (non-fatal issues)
	Warnings []Warning
}

// Open opens a score file and builds its model.
//
// Both plain MusicXML (.musicxml, .xml) and compressed archives (.mxl) are
// accepted; the format is detected from the file's content.
//
// Missing or unreadable fields inside the document do not fail Open; they
// are reported in File.Warnings. Use WithStrictParsing to turn them into
// errors.
//
//	file, err := musicxml.Open("etude.musicxml",
//	    musicxml.WithStrictParsing(),
//	    musicxml.WithMaxDocumentSize(16<<20),
//	)
func Open(path string, opts ...Option) (*File, error) {
	options := applyOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return openReader(f, stat.Size(), path, options)
}

// OpenReader builds a model from an in-memory or otherwise random-access
// source. path is used for error messages and warnings only.
func OpenReader(r io.ReaderAt, size int64, path string, opts ...Option) (*File, error) {
	return openReader(r, size, path, applyOptions(opts))
}

func openReader(r io.ReaderAt, size int64, path string, options *openOptions) (*File, error) {
	log := options.logger

	format, err := DetectFormat(r, size, path)
	if err != nil {
		return nil, err
	}

	loader := registry.Get(format)
	if loader == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no loader available for format %s", format),
		}
	}

	loaded, err := loader.Load(r, size, path, registry.LoadConfig{
		MaxDocumentSize: options.maxDocumentSize,
		Logger:          log,
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", format, err)
	}

	score := types.FromDocument(loaded.Root)

	file := &File{
		Path:     path,
		Format:   format,
		Size:     size,
		RootFile: loaded.RootFile,
		Score:    score,
	}
	file.Warnings = append(file.Warnings, loaded.Warnings...)
	file.Warnings = append(file.Warnings, score.Warnings...)

	log.Debug("opened score",
		zap.String("path", path),
		zap.Stringer("format", format),
		zap.Int("parts", len(score.Parts)),
		zap.Int("warnings", len(file.Warnings)))

	if options.strictParsing && len(file.Warnings) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrStrictParsing, file.Warnings[0])
	}

	if options.ignoreWarnings {
		file.Warnings = nil
		score.Warnings = nil
	}

	return file, nil
}

// OpenContext opens a file with context support for cancellation.
//
// The context is checked before the file is read and again before the
// model is returned; parsing a single document is not interruptible.
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	file, err := musicxml.OpenContext(ctx, "etude.mxl")
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return file, nil
}

// OpenMany opens multiple score files concurrently.
//
// Files are loaded in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. If any file
// fails to open, no files are returned.
//
//	files, err := musicxml.OpenMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range files {
//		fmt.Printf("%s: %d parts\n", f.Path, len(f.Score.Parts))
//	}
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	return OpenManyWith(ctx, paths, nil)
}

// OpenManyWith is OpenMany with options applied to every file.
func OpenManyWith(ctx context.Context, paths []string, opts []Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Open(path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Decode parses an uncompressed MusicXML document from r and builds its
// model. Compressed archives need random access; use OpenReader for them.
func Decode(r io.Reader) (*Score, error) {
	doc, err := ParseDocument(r)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc), nil
}

// Document is a parsed MusicXML element tree.
type Document = document.Node

// ParseDocument parses MusicXML markup without building the model.
func ParseDocument(r io.Reader) (*Document, error) {
	doc, err := document.Parse(r)
	if err != nil {
		return nil, &MalformedDocumentError{Path: "document", Err: err}
	}
	return doc, nil
}

// FromDocument builds the score model from a parsed document.
//
// It is a pure function of doc: calling it twice yields equal models, and
// it is safe to call concurrently on independent documents.
func FromDocument(doc *Document) *Score {
	return types.FromDocument(doc)
}
