package main

import (
	"fmt"
	"os"

	"github.com/dumbconf/go-dumbconf"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <path> [file]",
		Short: "Print the value at a dotted path",
		Long: `Print the value addressed by a dotted path.

Numeric path segments address list positions; everything else is a map
key. Use '\.' to escape a dot inside a key. If no file is provided,
reads from stdin.

Strings print raw; containers print as dumbconf.`,
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
			val, err := doc.At(parsePath(args[0])...).Value()
			if err != nil {
				return err
			}

			if s, ok := val.(string); ok {
				fmt.Println(s)
				return nil
			}
			out, err := dumbconf.Marshal(val)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}

	return cmd
}
