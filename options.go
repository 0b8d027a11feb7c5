package musicxml

import "go.uber.org/zap"

// Option configures behavior when opening score files.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	file, err := musicxml.Open("etude.mxl",
//	    musicxml.WithStrictParsing(),
//	    musicxml.WithLogger(logger),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	strictParsing   bool        // Fail on any warning
	ignoreWarnings  bool        // Suppress all warnings
	maxDocumentSize int64       // Maximum markup size in bytes (0 = no limit)
	logger          *zap.Logger // Debug output; never nil after applyOptions
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		strictParsing:   false,
		ignoreWarnings:  false,
		maxDocumentSize: 0, // No limit
		logger:          zap.NewNop(),
	}
}

func applyOptions(opts []Option) *openOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = zap.NewNop()
	}
	return options
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, musicxml keeps building the model when a note lacks a
// pitch field or a duration is unreadable, returning warnings alongside
// the model. With strict parsing enabled, the first warning becomes the
// returned error.
//
// Example:
//
//	file, err := musicxml.Open("etude.musicxml", musicxml.WithStrictParsing())
//	// err != nil if ANY issue is encountered
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// File.Warnings and Score.Warnings will always be empty.
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}

// WithMaxDocumentSize limits the size of the markup that will be parsed.
//
// For compressed archives the limit applies to the uncompressed size of
// each entry read, which protects against archives that expand to far
// more than their file size.
//
// Default is 0 (no limit).
//
// Example:
//
//	// Refuse documents over 32MB
//	file, err := musicxml.Open("score.mxl",
//	    musicxml.WithMaxDocumentSize(32<<20),
//	)
func WithMaxDocumentSize(bytes int64) Option {
	return func(o *openOptions) {
		o.maxDocumentSize = bytes
	}
}

// WithLogger sends debug output about loading to logger.
//
// Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *openOptions) {
		o.logger = logger
	}
}
