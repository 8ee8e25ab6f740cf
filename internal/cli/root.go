package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var cfg *Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "battleship",
		Short: "CLI client for the battleship game server",
		Long: `battleship is a WebSocket client for the battleship game server.

It can watch server events for a registered player, or play a full match
automatically using random attacks, which is handy for smoke-testing a
running server.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server WebSocket URL (env: BATTLESHIP_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Name, "name", cfg.Name, "Player name (env: BATTLESHIP_NAME)")
	rootCmd.PersistentFlags().StringVar(&cfg.Password, "password", cfg.Password, "Player password (env: BATTLESHIP_PASSWORD)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
