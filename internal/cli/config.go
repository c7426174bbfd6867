package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect CLI configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration (token masked)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := a.cfg.View()
			switch strings.ToLower(strings.TrimSpace(format)) {
			case FormatJSON:
				return a.printer.JSON(view)
			case FormatYAML, "":
				return a.printer.YAML(view)
			default:
				return fmt.Errorf("%w: --format must be yaml or json", ErrUsage)
			}
		},
	}
	show.Flags().StringVar(&format, "format", FormatYAML, "Output format: yaml or json")
	cmd.AddCommand(show)
	return cmd
}
