package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"recipefinder/internal/config"
	"recipefinder/internal/models"
)

// configKeys lists the settable keys in display order
var configKeys = []string{"server-url", "page-size", "request-timeout", "email", "log-level", "log-file"}

func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "server-url":
		return cfg.ServerURL, nil
	case "page-size":
		return strconv.Itoa(cfg.PageSize), nil
	case "request-timeout":
		return cfg.Timeout().String(), nil
	case "email":
		return cfg.Email, nil
	case "log-level":
		return cfg.LogLevel, nil
	case "log-file":
		return cfg.LogFile, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "server-url":
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("server URL must start with http:// or https://")
		}
		cfg.ServerURL = strings.TrimRight(value, "/")
	case "page-size":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("page size must be a positive number")
		}
		cfg.PageSize = n
	case "request-timeout":
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("request timeout must be a positive duration such as 30s")
		}
		cfg.RequestTimeout = d.String()
	case "email":
		cfg.Email = value
	case "log-level":
		if _, err := zapcore.ParseLevel(value); err != nil {
			return fmt.Errorf("invalid log level '%s'", value)
		}
		cfg.LogLevel = value
	case "log-file":
		cfg.LogFile = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update Recipe Finder configuration settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get configuration value",
	Long:  "Display specific configuration value or all configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		out := cmd.OutOrStdout()

		// If no argument is provided, show all config
		if len(args) == 0 {
			fmt.Fprintln(out, "Current configuration:")
			for _, key := range configKeys {
				value, _ := getConfigValue(cfg, key)
				if value == "" {
					continue
				}
				fmt.Fprintf(out, "%s: %s\n", key, value)
			}
			return nil
		}

		value, err := getConfigValue(cfg, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set configuration value",
	Long:  "Update a configuration setting. Keys: " + strings.Join(configKeys, ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobalConfigFile()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		key, value := args[0], args[1]
		oldValue, err := getConfigValue(cfg, key)
		if err != nil {
			return err
		}
		if err := setConfigValue(cfg, key, value); err != nil {
			return err
		}

		if err := config.SaveGlobalConfig(cfg); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		newValue, _ := getConfigValue(cfg, key)
		printSuccess(cmd.OutOrStdout(), "%s updated: %s -> %s", key, oldValue, newValue)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  "Create a new configuration file with default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetGlobalConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}

		out := cmd.OutOrStdout()

		// Check if config file exists
		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintln(out, "Configuration file already exists.")
			fmt.Fprintln(out, "Use 'recipes config set' to modify existing configuration.")
			return nil
		}

		cfg := config.Default()

		// Override defaults with provided flags
		if serverURLFlag != "" {
			if err := setConfigValue(cfg, "server-url", serverURLFlag); err != nil {
				return err
			}
		}

		if err := config.SaveGlobalConfig(cfg); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		printSuccess(out, "Configuration initialized successfully.")
		fmt.Fprintf(out, "Configuration file created at: %s\n", configPath)
		return nil
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show configuration file paths",
	Long:  "Display paths to the configuration, token and log files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := config.GetGlobalConfigDir()
		if err != nil {
			return err
		}
		configPath := filepath.Join(configDir, "config.json")
		tokenPath := filepath.Join(configDir, models.TokenFileName)
		logPath, err := config.DefaultLogPath()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Config paths:")
		fmt.Fprintf(out, "- Config directory: %s\n", configDir)
		fmt.Fprintf(out, "- Config file: %s\n", configPath)
		fmt.Fprintf(out, "- Auth token file: %s\n", tokenPath)
		fmt.Fprintf(out, "- Log file: %s\n", logPath)

		// Check existence
		fmt.Fprintln(out, "\nExistence status:")
		for _, entry := range []struct {
			label string
			path  string
		}{
			{"Config file", configPath},
			{"Auth token", tokenPath},
			{"Log file", logPath},
		} {
			if _, err := os.Stat(entry.path); os.IsNotExist(err) {
				fmt.Fprintf(out, "- %s: Does not exist\n", entry.label)
			} else {
				fmt.Fprintf(out, "- %s: Exists\n", entry.label)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathsCmd)
}
