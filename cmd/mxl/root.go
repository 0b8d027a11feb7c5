package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simonhull/musicxml"
	"github.com/simonhull/musicxml/internal/config"
	"github.com/simonhull/musicxml/internal/logging"
)

// app carries state shared by all subcommands, filled in before any of
// them runs.
type app struct {
	configPath string
	logLevel   string
	strict     bool

	cfg config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "mxl",
		Short:         "Read MusicXML scores",
		Long:          "mxl reads MusicXML (.musicxml, .xml) and compressed MusicXML (.mxl) scores.",
		Version:       musicxml.GetVersionInfo().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (default: ./"+config.FileName+" if present)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&a.strict, "strict", false, "fail on the first warning")

	root.AddCommand(
		newShowCmd(a),
		newDumpCmd(a),
		newExportCmd(a),
		newBatchCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup loads the config file and applies flag overrides.
func (a *app) setup() error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot get working directory: %w", err)
	}

	cfg, err := config.Load(wd, a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.strict {
		cfg.Strict = true
	}
	a.cfg = cfg

	a.log, err = logging.New(cfg.LogLevel, logging.Destination(cfg.LogOutput))
	if err != nil {
		return err
	}
	if cfg.Source != "" {
		a.log.Debug("loaded config", zap.String("path", cfg.Source))
	}
	return nil
}

// openOptions turns the settings into library options.
func (a *app) openOptions() []musicxml.Option {
	opts := []musicxml.Option{
		musicxml.WithLogger(a.log),
		musicxml.WithMaxDocumentSize(a.cfg.MaxDocumentSize),
	}
	if a.cfg.Strict {
		opts = append(opts, musicxml.WithStrictParsing())
	}
	return opts
}

func (a *app) open(path string) (*musicxml.File, error) {
	return musicxml.Open(path, a.openOptions()...)
}

func printWarnings(w io.Writer, warnings []musicxml.Warning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
}
