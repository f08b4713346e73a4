package commands

import (
	"github.com/spf13/cobra"

	"recipefinder/internal/config"
)

var globalConfig *config.Config

var (
	// Persistent flags
	serverURLFlag string
	logFileFlag   string
	debugFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Recipe Finder - search recipes by ingredient and keep your favorites",
	Long: `Recipe Finder (recipes) is a terminal client for the Recipe Finder API.
Search recipes by ingredient, save favorites, rate and review them, either
with one-shot commands or in the interactive browser ('recipes browse').`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute(cfg *config.Config) error {
	globalConfig = cfg
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURLFlag, "server-url", "", "API server URL (overrides the configuration)")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}
