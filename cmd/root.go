package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/billwatch/internal/update"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagFrom     string
	flagTo       string
	flagConfig   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "billwatch",
	Short: "Terminal dashboard for congress.gov bill summaries",
	Long: `billwatch loads every bill summary published in a date range from the
congress.gov API and lets you search, hide, sort and page through them.

The API key is read from the config file or $BILLWATCH_API_KEY.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagFrom, "from", "", "start date, YYYY-MM-DD (default: lookback from config)")
	rootCmd.PersistentFlags().StringVar(&flagTo, "to", "", "end date, YYYY-MM-DD (default: today)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
}

func newVersionCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "billwatch %s (commit: %s, built: %s)\n", version, commit, date)
			if !check {
				return
			}
			if res := update.Check(cmd.Context(), version); res != nil {
				fmt.Fprintf(out, "A newer version is available: %s\n", res.LatestVersion)
			} else {
				fmt.Fprintln(out, "No newer release found.")
			}
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")
	return cmd
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
