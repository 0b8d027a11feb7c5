package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/simonhull/musicxml"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	cellColumn  = lipgloss.NewStyle().Width(10)
)

func newBatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>...",
		Short: "Open many scores at once and summarize them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := musicxml.OpenManyWith(cmd.Context(), args, a.openOptions())
			if err != nil {
				return err
			}

			pathWidth := len("PATH")
			for _, f := range files {
				pathWidth = max(pathWidth, lipgloss.Width(f.Path))
			}
			pathWidth += 2

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render(summaryRow(pathWidth, "PATH", "FORMAT", "PARTS", "MEASURES", "WARNINGS")))
			for _, f := range files {
				measures := 0
				for _, p := range f.Score.Parts {
					measures += len(p.Measures)
				}
				fmt.Fprintln(out, summaryRow(pathWidth,
					f.Path,
					f.Format.String(),
					strconv.Itoa(len(f.Score.Parts)),
					strconv.Itoa(measures),
					strconv.Itoa(len(f.Warnings)),
				))
			}
			return nil
		},
	}
}

func summaryRow(pathWidth int, path string, cells ...string) string {
	cols := []string{lipgloss.NewStyle().Width(pathWidth).Render(path)}
	for _, c := range cells {
		cols = append(cols, cellColumn.Render(c))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
