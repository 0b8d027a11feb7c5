package main

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/musicxml/internal/jsonexport"
)

func newDumpCmd(a *app) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a score's model as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := a.open(args[0])
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), file.Warnings)
			return jsonexport.Encode(cmd.OutOrStdout(), file.Score, !compact)
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "print on one line")
	return cmd
}
