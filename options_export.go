package musicxml

// ExportOption configures behavior when exporting to a file.
//
// Example:
//
//	err := file.ExportTo("etude.mid", musicxml.ExportMIDI,
//	    musicxml.WithBackup(".bak"),
//	    musicxml.WithValidation(),
//	)
type ExportOption func(*exportOptions)

// exportOptions holds configuration for exporting files.
type exportOptions struct {
	backupSuffix    string // Suffix for backup file (e.g., ".bak")
	validate        bool   // Re-read the export before writing it
	preserveModTime bool   // Give the export the source file's modification time
}

// defaultExportOptions returns the default configuration for exporting.
func defaultExportOptions() *exportOptions {
	return &exportOptions{
		backupSuffix:    "",
		validate:        false,
		preserveModTime: false,
	}
}

// WithBackup keeps an existing output file before replacing it.
//
// The backup file will have the specified suffix appended to the output
// filename. For example, WithBackup(".bak") copies an existing
// "etude.mid" to "etude.mid.bak" before writing the new one. The existing
// file stays in place until the new one replaces it, so a failed write
// leaves it untouched.
//
// If the backup file already exists, it will be overwritten.
func WithBackup(suffix string) ExportOption {
	return func(o *exportOptions) {
		o.backupSuffix = suffix
	}
}

// WithValidation reads the export back before it is written to disk.
//
// MIDI exports are re-parsed and must contain one track per part; JSON
// exports are decoded and must match the score's title and shape. A
// failed check leaves any existing output file untouched.
func WithValidation() ExportOption {
	return func(o *exportOptions) {
		o.validate = true
	}
}

// WithPreserveModTime gives the export the modification time of the score
// file it was built from, so timestamp-based build tools see it as up to
// date with its source.
func WithPreserveModTime() ExportOption {
	return func(o *exportOptions) {
		o.preserveModTime = true
	}
}
