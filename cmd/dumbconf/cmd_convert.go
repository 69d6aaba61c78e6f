package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dumbconf/go-dumbconf"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var convertTo string

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a dumbconf file to JSON or YAML",
		Long: `Convert a dumbconf file to another format, preserving key
order. Comments do not survive conversion. If no file is provided,
reads from stdin.`,
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

			var output []byte
			switch convertTo {
			case "json":
				output, err = json.MarshalIndent(val, "", "  ")
				if err != nil {
					return err
				}
				output = append(output, '\n')
			case "yaml":
				output, err = yaml.Marshal(yamlValue(val))
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported format %q (want json or yaml)", convertTo)
			}

			_, err = os.Stdout.Write(output)
			return err
		},
	}

	cmd.Flags().StringVar(&convertTo, "to", "json", "output format: json or yaml")

	return cmd
}

// yamlValue rewrites ordered maps as yaml.MapSlice so key order survives
// the conversion.
func yamlValue(v any) any {
	switch v := v.(type) {
	case dumbconf.Map:
		out := make(yaml.MapSlice, 0, v.Len())
		for _, e := range v {
			out = append(out, yaml.MapItem{Key: yamlValue(e.Key), Value: yamlValue(e.Value)})
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, e := range v {
			out = append(out, yamlValue(e))
		}
		return out
	default:
		return v
	}
}
