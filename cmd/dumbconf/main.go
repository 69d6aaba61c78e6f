// Command dumbconf reads, edits and converts dumbconf configuration files.
// Editing commands work on the full-fidelity document form, so comments and
// formatting outside the edited value survive untouched.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dumbconf",
		Short: "Read and surgically edit dumbconf configuration files",
	}

	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newSetCmd())
	rootCmd.AddCommand(newDelCmd())
	rootCmd.AddCommand(newRekeyCmd())
	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newConvertCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
