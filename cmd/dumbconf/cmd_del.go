package main

import (
	"fmt"

	"github.com/dumbconf/go-dumbconf"
	"github.com/spf13/cobra"
)

func newDelCmd() *cobra.Command {
	var delOverwrite bool
	var delDiff bool

	cmd := &cobra.Command{
		Use:   "del <path> [file]",
		Short: "Delete the item at a dotted path",
		Long: `Delete the item addressed by a dotted path, repairing commas
and line breaks around it so the rest of the document keeps its exact
text. If no file is provided, reads from stdin.

Use -w to overwrite the file in place, or --diff to show the change
instead of the result.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 2 {
				file = args[1]
			}
			source, err := readInput(file)
			if err != nil {
				return err
			}

			doc, err := dumbconf.Parse(source)
			if err != nil {
				return err
			}
			if err := doc.At(parsePath(args[0])...).Delete(); err != nil {
				return err
			}

			if delDiff {
				fmt.Print(renderDiff(string(source), doc.String()))
				return nil
			}
			return writeOutput(file, delOverwrite, doc.Bytes())
		},
	}

	cmd.Flags().BoolVarP(&delOverwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVar(&delDiff, "diff", false, "print a diff instead of the edited document")

	return cmd
}
