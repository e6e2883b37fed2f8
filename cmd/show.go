package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matheuskafuri/billwatch/internal/detail"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <detail-url>",
		Short:   "Fetch and print one bill's full detail record",
		Example: `  billwatch show https://api.congress.gov/v3/bill/118/hr/16?format=json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := consoleLogger(cmd.ErrOrStderr(), cfg)

			v, err := newClient(cfg, log).FetchDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			heading := lipgloss.NewStyle().Bold(true)
			fmt.Fprintln(cmd.OutOrStdout(), detail.Render(v, detail.Theme{Heading: heading.Render}))
			return nil
		},
	}
}
