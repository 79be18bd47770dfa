package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	logLevel   string
	logFormat  string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "server",
		Short: "Beeps server - a tiny authenticated notice board",
		Long: `Beeps accepts short text notices from holders of a shared bearer secret
and lists them, newest first, on a single HTML page.

Beeps live in memory only; restarting the server clears them.`,
		// Run the serve command by default if no subcommand is specified
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCmd.RunE(cmd, args)
		},
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	addPersistentFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(healthcheckCmd)
	rootCmd.AddCommand(beepCmd)
}

func addPersistentFlags(c *cobra.Command) {
	c.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file path (optional, env vars override it)")
	c.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error) (default: info)")
	c.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (json, console) (default: json)")
}
