package musicxml

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"

	"github.com/simonhull/musicxml/internal/registry"
)

const filePerms = 0o644

// writeFile replaces a file atomically; tests swap it to simulate failures.
var writeFile = atomic.WriteFile

// Export writes the score to w in the target format.
//
// Returns UnsupportedExportError if no exporter is registered for target.
func (f *File) Export(w io.Writer, target ExportFormat) error {
	return ExportScore(w, f.Score, target)
}

// ExportScore writes score to w in the target format.
func ExportScore(w io.Writer, score *Score, target ExportFormat) error {
	exporter := registry.GetExporter(target)
	if exporter == nil {
		return &UnsupportedExportError{
			Target: target,
			Reason: "no exporter registered",
		}
	}
	if err := exporter.Export(w, score); err != nil {
		return fmt.Errorf("export %s: %w", target, err)
	}
	return nil
}

// ExportTo writes the score to a file.
//
// This is an atomic operation: the export is written to a temporary file
// in the output directory and renamed into place, so readers never see a
// partial file. If target is ExportUnknown it is picked from the output
// path's extension.
//
// Options can be provided to customize export behavior:
//
//	err := file.ExportTo("etude.mid", musicxml.ExportMIDI,
//	    musicxml.WithBackup(".bak"),
//	    musicxml.WithValidation(),
//	)
//
// Returns UnsupportedExportError if no exporter is registered for target.
func (f *File) ExportTo(outputPath string, target ExportFormat, opts ...ExportOption) error {
	options := defaultExportOptions()
	for _, opt := range opts {
		opt(options)
	}

	if target == ExportUnknown {
		target = ExportFormatFor(outputPath)
	}

	var buf bytes.Buffer
	if err := f.Export(&buf, target); err != nil {
		return err
	}
	data := buf.Bytes()

	if options.validate {
		if v, ok := registry.GetExporter(target).(registry.Validator); ok {
			if err := v.Validate(bytes.NewReader(data), f.Score); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
		}
	}

	info, statErr := os.Stat(outputPath)
	existed := statErr == nil

	if options.backupSuffix != "" && existed {
		if err := copyFile(outputPath, outputPath+options.backupSuffix, info.Mode().Perm()); err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}

	if err := writeFile(outputPath, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	// atomic.WriteFile only carries permissions over from a file it replaces.
	if !existed {
		if err := os.Chmod(outputPath, filePerms); err != nil {
			return fmt.Errorf("set permissions: %w", err)
		}
	}

	if options.preserveModTime && f.Path != "" {
		if info, err := os.Stat(f.Path); err == nil {
			_ = os.Chtimes(outputPath, info.ModTime(), info.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
		}
	}

	return nil
}

// copyFile copies src to dst atomically, giving dst the mode perm.
func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := writeFile(dst, in); err != nil {
		return err
	}
	return os.Chmod(dst, perm)
}
