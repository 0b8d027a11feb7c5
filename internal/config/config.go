// Package config loads the JSONC settings file shared by the mxl commands.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/simonhull/musicxml/internal/logging"
)

// FileName is the project config file looked up in the working directory.
const FileName = ".mxl.json"

var (
	ErrFileNotFound = errors.New("config file not found")
	ErrFileRead     = errors.New("cannot read config file")
	ErrInvalid      = errors.New("invalid config file")
)

// Config holds the settings of the mxl commands.
type Config struct {
	LogLevel  string `json:"log_level,omitempty"`
	LogOutput string `json:"log_output,omitempty"`

	// Addr is the listen address of "mxl serve".
	Addr string `json:"addr,omitempty"`

	Strict          bool  `json:"strict,omitempty"`
	MaxDocumentSize int64 `json:"max_document_size,omitempty"`

	// Backup is the suffix for backups of overwritten export targets.
	Backup   string `json:"backup,omitempty"`
	Validate bool   `json:"validate,omitempty"`

	// Source is the file the settings were read from, empty for defaults.
	Source string `json:"-"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		LogLevel:        "info",
		LogOutput:       string(logging.Console),
		Addr:            ":8080",
		MaxDocumentSize: 64 << 20,
	}
}

// Load reads settings with the following precedence (highest wins):
// 1. Defaults
// 2. FileName in workDir, if it exists
// 3. The explicit path, which must exist.
//
// Only one file is read: an explicit path replaces the lookup in workDir.
func Load(workDir, path string) (Config, error) {
	cfg := Default()

	mustExist := path != ""
	if path == "" {
		path = filepath.Join(workDir, FileName)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case os.IsNotExist(err) && !mustExist:
		return cfg, nil
	case os.IsNotExist(err):
		return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrFileRead, path)
	}

	fileCfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
	}

	cfg = merge(cfg, fileCfg)
	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// Parse decodes JSONC (JSON with comments and trailing commas).
func Parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}
	if overlay.LogOutput != "" {
		base.LogOutput = overlay.LogOutput
	}
	if overlay.Addr != "" {
		base.Addr = overlay.Addr
	}
	if overlay.Strict {
		base.Strict = true
	}
	if overlay.MaxDocumentSize != 0 {
		base.MaxDocumentSize = overlay.MaxDocumentSize
	}
	if overlay.Backup != "" {
		base.Backup = overlay.Backup
	}
	if overlay.Validate {
		base.Validate = true
	}
	return base
}

func validate(cfg Config) error {
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.MaxDocumentSize < 0 {
		return fmt.Errorf("max_document_size must not be negative, got %d", cfg.MaxDocumentSize)
	}
	return nil
}
