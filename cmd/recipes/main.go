package main

import (
	"fmt"
	"os"

	"recipefinder/internal/commands"
	"recipefinder/internal/config"
)

func main() {
	// Create config directory if it doesn't exist
	configDir, err := config.GetGlobalConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config directory: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		os.Exit(1)
	}

	// Load config
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		// Continue with defaults
		cfg = config.Default()
	}

	// Execute root command
	if err := commands.Execute(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
