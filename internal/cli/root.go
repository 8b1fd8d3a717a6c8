// Package cli provides the command-line interface of apidoc.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/example/apidoc/internal/logging"
)

// Execute creates and runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand assembles the apidoc command tree.
func NewRootCommand() *cobra.Command {
	var (
		verbose   bool
		logFormat string
	)

	rootCmd := &cobra.Command{
		Use:   "apidoc",
		Short: "Generate HTML API reference documentation from <api> annotations",
		Long: `apidoc parses <api name="..."> annotation blocks embedded in markdown
files, renders them into cross-linked HTML reference pages and builds a
static documentation site from modules, guides and static files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			format, err := logging.ParseLogFormat(logFormat)
			if err != nil {
				return err
			}
			logging.SetLogFormat(format)
			logging.SetOutput(cmd.ErrOrStderr())
			if verbose {
				logging.SetLogLevelToDebug()
			} else {
				logging.SetLogLevel(logrus.InfoLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", string(logging.DefaultLogFormat), "Log format: text or json")

	rootCmd.AddCommand(
		newParseCommand(),
		newRenderCommand(),
		newBuildCommand(),
		newValidateCommand(),
		newServeCommand(),
	)
	return rootCmd
}
