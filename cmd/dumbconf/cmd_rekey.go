package main

import (
	"fmt"

	"github.com/dumbconf/go-dumbconf"
	"github.com/spf13/cobra"
)

func newRekeyCmd() *cobra.Command {
	var rekeyOverwrite bool
	var rekeyDiff bool

	cmd := &cobra.Command{
		Use:   "rekey <path> <key> [file]",
		Short: "Rename the map key at a dotted path",
		Long: `Replace the map key of the item addressed by a dotted path,
keeping its value and all surrounding formatting. The new key is
parsed as dumbconf, so unquoted words become string keys and numbers
become numeric keys. If no file is provided, reads from stdin.

Use -w to overwrite the file in place, or --diff to show the change
instead of the result.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 3 {
				file = args[2]
			}
			source, err := readInput(file)
			if err != nil {
				return err
			}

			doc, err := dumbconf.Parse(source)
			if err != nil {
				return err
			}
			if err := doc.At(parsePath(args[0])...).SetKey(parseValueArg(args[1])); err != nil {
				return err
			}

			if rekeyDiff {
				fmt.Print(renderDiff(string(source), doc.String()))
				return nil
			}
			return writeOutput(file, rekeyOverwrite, doc.Bytes())
		},
	}

	cmd.Flags().BoolVarP(&rekeyOverwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVar(&rekeyDiff, "diff", false, "print a diff instead of the edited document")

	return cmd
}
