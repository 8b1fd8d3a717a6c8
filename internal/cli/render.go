package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/apidoc/internal/apiparser"
	"github.com/example/apidoc/internal/markdown"
	"github.com/example/apidoc/internal/renderer"
)

// RenderConfig holds the options of "apidoc render".
type RenderConfig struct {
	InputPath  string
	OutputPath string
	Module     string
	Markdown   string
	Page       bool
}

func newRenderCommand() *cobra.Command {
	var config RenderConfig

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render an annotated file as an HTML fragment or page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InputPath = args[0]
			data, err := readInput(cmd.InOrStdin(), config.InputPath)
			if err != nil {
				return err
			}
			out, err := Render(string(data), &config)
			if err != nil {
				return fmt.Errorf("%s: %w", config.InputPath, err)
			}
			return writeOutput(cmd.OutOrStdout(), config.OutputPath, []byte(out))
		},
	}

	cmd.Flags().StringVarP(&config.Module, "module", "m", "", "Module name (defaults to the file name without extension)")
	cmd.Flags().StringVar(&config.Markdown, "markdown", markdown.Default, "Markdown engine: goldmark or blackfriday")
	cmd.Flags().BoolVar(&config.Page, "page", false, "Wrap the output in a standalone HTML page")
	cmd.Flags().StringVarP(&config.OutputPath, "output", "o", "-", "Path to output file or '-' for stdout")

	return cmd
}

// Render parses text and renders it according to config.
func Render(text string, config *RenderConfig) (string, error) {
	md, err := markdown.New(config.Markdown)
	if err != nil {
		return "", err
	}
	m, err := apiparser.ParseModule(text)
	if err != nil {
		return "", err
	}

	name := config.Module
	if name == "" && config.InputPath != "-" {
		name = strings.TrimSuffix(filepath.Base(config.InputPath), filepath.Ext(config.InputPath))
	}

	r := renderer.New(md)
	if config.Page {
		return r.RenderPage(m, name)
	}
	return r.RenderModule(m, name)
}
