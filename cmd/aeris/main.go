// Command aeris runs the voice assistant.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	headless   bool
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:          "aeris",
	Short:        "Aeris - a wake word voice assistant",
	SilenceUsage: true,
	Long: `Aeris listens for its name (or push-to-talk), transcribes what you say,
works out what you want and answers out loud.

Typed requests are answered on screen only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runAssistant(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config.yaml or ~/.config/aeris/config.yaml)")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "read requests from stdin and print answers instead of the terminal UI")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the terminal UI runs")

	rootCmd.AddCommand(factsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
