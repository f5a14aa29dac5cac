package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/altiumtools/rulegen/internal/version"
	"github.com/altiumtools/rulegen/pkg/logging"
)

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:   "rulegen",
		Short: "Convert PCB clearance matrices to and from design rule files",
		Long: `rulegen converts between the spreadsheet-style pivot matrix of
net-class clearances and the .RUL design rule file format, and can
inspect rule files from the terminal.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				pterm.DisableColor()
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("rulegen version %s\n", version.Version)
		cmd.Printf("  commit: %s\n", version.Commit)
		cmd.Printf("  built:  %s\n", version.Date)
	},
}
