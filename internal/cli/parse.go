package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/apidoc/internal/apiparser"
)

// ParseConfig holds the options of "apidoc parse".
type ParseConfig struct {
	InputPath  string
	OutputPath string
	Format     string
}

func newParseCommand() *cobra.Command {
	var config ParseConfig

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse an annotated file and print its API tree as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InputPath = args[0]
			data, err := readInput(cmd.InOrStdin(), config.InputPath)
			if err != nil {
				return err
			}
			out, err := ParseToFormat(string(data), config.Format)
			if err != nil {
				return fmt.Errorf("%s: %w", config.InputPath, err)
			}
			return writeOutput(cmd.OutOrStdout(), config.OutputPath, out)
		},
	}

	cmd.Flags().StringVarP(&config.Format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&config.OutputPath, "output", "o", "-", "Path to output file or '-' for stdout")

	return cmd
}

// ParseToFormat parses text and encodes the module in format.
func ParseToFormat(text, format string) ([]byte, error) {
	m, err := apiparser.ParseModule(text)
	if err != nil {
		return nil, err
	}
	switch format {
	case "json":
		return m.JSON()
	case "yaml", "yml":
		return m.YAML()
	}
	return nil, fmt.Errorf("unsupported format %q, expected json or yaml", format)
}
