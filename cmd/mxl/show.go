package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/musicxml/internal/render"
)

func newShowCmd(a *app) *cobra.Command {
	var width, measureWidth int

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Render a score in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := a.open(args[0])
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), file.Warnings)

			r := render.New(render.WithWidth(width), render.WithMeasureWidth(measureWidth))
			fmt.Fprintln(cmd.OutOrStdout(), r.Score(file.Score))
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 100, "wrap measures at this many columns")
	cmd.Flags().IntVar(&measureWidth, "measure-width", 24, "columns a full measure spans")
	return cmd
}
