package main

import (
	"fmt"

	"github.com/dumbconf/go-dumbconf"
	"github.com/spf13/cobra"
)

// parseValueArg interprets a command-line argument as a dumbconf value.
// Anything that does not parse as dumbconf (an unquoted word, say) is
// taken as a plain string.
func parseValueArg(arg string) any {
	doc, err := dumbconf.Parse([]byte(arg))
	if err != nil {
		return arg
	}
	val, err := doc.Value()
	if err != nil {
		return arg
	}
	return val
}

func newSetCmd() *cobra.Command {
	var setOverwrite bool
	var setDiff bool

	cmd := &cobra.Command{
		Use:   "set <path> <value> [file]",
		Short: "Replace the value at a dotted path",
		Long: `Replace the value addressed by a dotted path, keeping every
other byte of the document untouched.

The value argument is parsed as dumbconf, so true, 42, 1.5, null,
'quoted strings' and inline containers like [1, 2] all work; anything
that does not parse is taken as a plain string. If no file is
provided, reads from stdin.

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
			if err := doc.At(parsePath(args[0])...).Set(parseValueArg(args[1])); err != nil {
				return err
			}

			if setDiff {
				fmt.Print(renderDiff(string(source), doc.String()))
				return nil
			}
			return writeOutput(file, setOverwrite, doc.Bytes())
		},
	}

	cmd.Flags().BoolVarP(&setOverwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVar(&setDiff, "diff", false, "print a diff instead of the edited document")

	return cmd
}
