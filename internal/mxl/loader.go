// Package mxl loads compressed MusicXML archives.
//
// An archive is a ZIP file whose META-INF/container.xml manifest lists one
// or more root files; the first listed is the score. Archives written by
// older tools sometimes omit the manifest, in which case the first
// top-level .musicxml or .xml entry is used instead.
package mxl

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/simonhull/musicxml/internal/binary"
	"github.com/simonhull/musicxml/internal/document"
	"github.com/simonhull/musicxml/internal/registry"
	"github.com/simonhull/musicxml/internal/types"
)

const (
	containerPath = "META-INF/container.xml"
	mimetypePath  = "mimetype"
	mimetype      = "application/vnd.recordare.musicxml"

	zipLocalHeader = uint32(0x04034b50)
)

var errEntryTooLarge = errors.New("entry exceeds size limit")

// loader implements registry.DocumentLoader for .mxl archives.
type loader struct{}

// Load opens the archive, resolves its root file and parses it.
func (l *loader) Load(r io.ReaderAt, size int64, filePath string, cfg registry.LoadConfig) (*registry.Loaded, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	sr := binary.NewSafeReader(r, size, filePath)
	sig, err := binary.ReadLE[uint32](sr, 0, "zip signature")
	if err != nil {
		return nil, &types.ArchiveError{Path: filePath, Reason: "failed to read zip signature"}
	}
	if sig != zipLocalHeader {
		return nil, &types.ArchiveError{Path: filePath, Reason: "archive has no entries"}
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &types.ArchiveError{Path: filePath, Reason: err.Error()}
	}

	loaded := &registry.Loaded{}

	checkMimetype(zr, loaded)

	rootFile, err := resolveRootFile(zr, filePath, cfg.MaxDocumentSize, loaded)
	if err != nil {
		return nil, err
	}
	loaded.RootFile = rootFile

	log.Debug("resolved archive root file",
		zap.String("path", filePath),
		zap.String("rootfile", rootFile),
		zap.Int("entries", len(zr.File)))

	root, err := parseEntry(zr, rootFile, filePath, cfg.MaxDocumentSize)
	if err != nil {
		return nil, err
	}
	loaded.Root = root

	return loaded, nil
}

// checkMimetype warns when the optional mimetype entry names something else.
func checkMimetype(zr *zip.Reader, loaded *registry.Loaded) {
	f := findEntry(zr, mimetypePath)
	if f == nil {
		return
	}
	rc, err := f.Open()
	if err != nil {
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, 256))
	if err != nil {
		return
	}
	if got := strings.TrimSpace(string(data)); got != mimetype {
		loaded.Warnings = append(loaded.Warnings, types.Warning{
			Stage:   "archive",
			Message: fmt.Sprintf("unexpected mimetype %q", got),
		})
	}
}

// resolveRootFile reads the container manifest and returns the path of the
// score inside the archive.
func resolveRootFile(zr *zip.Reader, filePath string, limit int64, loaded *registry.Loaded) (string, error) {
	if findEntry(zr, containerPath) == nil {
		fallback := firstDocumentEntry(zr)
		if fallback == "" {
			return "", &types.ArchiveError{
				Path:   filePath,
				Entry:  containerPath,
				Reason: "manifest missing and no MusicXML entry found",
			}
		}
		loaded.Warnings = append(loaded.Warnings, types.Warning{
			Stage:   "archive",
			Message: fmt.Sprintf("no %s; using %s", containerPath, fallback),
		})
		return fallback, nil
	}

	container, err := parseEntry(zr, containerPath, filePath, limit)
	if err != nil {
		return "", err
	}

	var paths []string
	for _, rf := range container.ElementsByTag("rootfile") {
		if p, ok := rf.Attr("full-path"); ok && p != "" {
			paths = append(paths, p)
		}
	}

	if len(paths) == 0 {
		return "", &types.ArchiveError{
			Path:   filePath,
			Entry:  containerPath,
			Reason: "manifest lists no root file",
		}
	}
	if len(paths) > 1 {
		loaded.Warnings = append(loaded.Warnings, types.Warning{
			Stage:   "archive",
			Message: fmt.Sprintf("manifest lists %d root files; using %s", len(paths), paths[0]),
		})
	}

	return paths[0], nil
}

// parseEntry parses one archive entry as markup.
func parseEntry(zr *zip.Reader, name, filePath string, limit int64) (*document.Node, error) {
	f := findEntry(zr, name)
	if f == nil {
		return nil, &types.ArchiveError{Path: filePath, Entry: name, Reason: "entry not found"}
	}

	if limit > 0 && f.UncompressedSize64 > uint64(limit) {
		return nil, &types.ArchiveError{
			Path:   filePath,
			Entry:  name,
			Reason: fmt.Sprintf("entry is %d bytes, limit is %d", f.UncompressedSize64, limit),
		}
	}

	rc, err := f.Open()
	if err != nil {
		return nil, &types.ArchiveError{Path: filePath, Entry: name, Reason: err.Error()}
	}
	defer rc.Close()

	var src io.Reader = rc
	if limit > 0 {
		src = &limitReader{r: rc, remaining: limit}
	}

	root, err := document.Parse(src)
	switch {
	case errors.Is(err, errEntryTooLarge):
		return nil, &types.ArchiveError{Path: filePath, Entry: name, Reason: errEntryTooLarge.Error()}
	case errors.Is(err, zip.ErrChecksum), errors.Is(err, zip.ErrFormat), errors.Is(err, zip.ErrAlgorithm):
		return nil, &types.ArchiveError{Path: filePath, Entry: name, Reason: err.Error()}
	case err != nil:
		return nil, &types.MalformedDocumentError{Path: filePath + ":" + name, Err: err}
	}
	return root, nil
}

// findEntry looks an entry up by its slash-separated path. A leading slash
// in the manifest is tolerated.
func findEntry(zr *zip.Reader, name string) *zip.File {
	name = strings.TrimPrefix(name, "/")
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// firstDocumentEntry returns the first top-level .musicxml or .xml entry.
func firstDocumentEntry(zr *zip.Reader) string {
	for _, f := range zr.File {
		if strings.Contains(f.Name, "/") {
			continue
		}
		switch strings.ToLower(path.Ext(f.Name)) {
		case ".musicxml", ".xml":
			return f.Name
		}
	}
	return ""
}

// limitReader fails once more than remaining bytes have been read, so a
// size header that understates the entry cannot bypass the limit.
type limitReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, errEntryTooLarge
	}
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, errEntryTooLarge
	}
	return n, err
}

func init() {
	registry.Register(types.FormatMXL, &loader{})
}
