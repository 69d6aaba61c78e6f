package main

import (
	"fmt"

	"github.com/dumbconf/go-dumbconf"
	"github.com/spf13/cobra"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool
	var fmtDiff bool
	var fmtCompact bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite a dumbconf file in canonical form",
		Long: `Re-render a dumbconf file in canonical form: four-space
indentation, trailing commas, bare keys where possible. Comments do
not survive formatting; use set/del for comment-preserving edits. If
no file is provided, reads from stdin.

Use -w to overwrite the file in place, or --diff to show the change
instead of the result.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			source, err := readInput(file)
			if err != nil {
				return err
			}

			doc, err := dumbconf.Parse(source)
			if err != nil {
				return err
			}
			val, err := doc.Value()
			if err != nil {
				return err
			}
			output, err := dumbconf.Marshal(val, dumbconf.Indented(!fmtCompact))
			if err != nil {
				return err
			}

			if fmtDiff {
				fmt.Print(renderDiff(string(source), string(output)))
				return nil
			}
			return writeOutput(file, fmtOverwrite, output)
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVar(&fmtDiff, "diff", false, "print a diff instead of the formatted document")
	cmd.Flags().BoolVar(&fmtCompact, "compact", false, "render everything on one line")

	return cmd
}
