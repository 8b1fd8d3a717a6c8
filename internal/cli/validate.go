package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/apidoc/internal/validator"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a module document produced by parse or a site build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validator.ValidateFile(args[0], cmd.OutOrStdout())
		},
	}
}
