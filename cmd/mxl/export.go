package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/musicxml"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		output    string
		format    string
		validate  bool
		keepMtime bool
	)

	cmd := &cobra.Command{
		Use:   "export <file> -o <output>",
		Short: "Write a score as MIDI or JSON",
		Long: `Write a score as a Standard MIDI File or as JSON.

The target format follows the output extension (.mid, .midi, .json)
unless --format is given. An existing output file is replaced atomically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("an output path is required (-o)")
			}

			target, err := parseTarget(format)
			if err != nil {
				return err
			}

			file, err := a.open(args[0])
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), file.Warnings)

			var opts []musicxml.ExportOption
			if a.cfg.Backup != "" {
				opts = append(opts, musicxml.WithBackup(a.cfg.Backup))
			}
			if validate || a.cfg.Validate {
				opts = append(opts, musicxml.WithValidation())
			}
			if keepMtime {
				opts = append(opts, musicxml.WithPreserveModTime())
			}

			if err := file.ExportTo(output, target, opts...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "midi or json (default: from the output extension)")
	cmd.Flags().BoolVar(&validate, "validate", false, "read the output back before replacing the target")
	cmd.Flags().BoolVar(&keepMtime, "preserve-mtime", false, "give the output the score's modification time")
	return cmd
}

func parseTarget(name string) (musicxml.ExportFormat, error) {
	switch name {
	case "":
		return musicxml.ExportUnknown, nil
	case "midi", "mid":
		return musicxml.ExportMIDI, nil
	case "json":
		return musicxml.ExportJSON, nil
	default:
		return musicxml.ExportUnknown, fmt.Errorf("unknown export format %q", name)
	}
}
