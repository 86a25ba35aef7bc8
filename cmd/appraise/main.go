package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/appraise/internal/cli"
	"github.com/Veraticus/appraise/internal/common"
	"github.com/Veraticus/appraise/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// logToFile marks commands that own the terminal, so logs must not reach stderr.
const logToFile = "log-to-file"

var (
	cfgFile  string
	version  = "dev"
	settings config.Settings
	logFile  *os.File
	rootCmd  = &cobra.Command{
		Use:   "appraise",
		Short: "🏠 Terminal client for a house price prediction service",
		Long: `appraise: enter a house's details and get a price estimate, a confidence
range and the model's feature importance, all from your terminal.

Run without a subcommand to start the interactive predictor.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: initConfig,
		RunE:              runUI,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Annotations:       map[string]string{logToFile: "true"},
	}
)

func init() {
	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/appraise/config.yaml)")
	flags.String("api-url", "", "prediction service base URL (default: http://localhost:8000)")
	flags.Duration("timeout", 0, "per-request timeout (default: 30s)")
	flags.String("theme", "", "UI theme (default, catppuccin-mocha)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("log-file", "", "log file used by the interactive UI (default: ~/.local/state/appraise/appraise.log)")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyAPIURL, flags.Lookup("api-url"))
	_ = viper.BindPFlag(config.KeyAPITimeout, flags.Lookup("timeout"))
	_ = viper.BindPFlag(config.KeyTheme, flags.Lookup("theme"))
	_ = viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyLogFile, flags.Lookup("log-file"))

	addRecordFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(uiCmd())
	rootCmd.AddCommand(demoCmd())
	rootCmd.AddCommand(predictCmd())
	rootCmd.AddCommand(importanceCmd())
	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx := interrupts.HandleInterrupts(context.Background())

	err := rootCmd.ExecuteContext(ctx)
	if logFile != nil {
		_ = logFile.Close()
	}

	if err != nil {
		if !interrupts.WasInterrupted() {
			fmt.Fprintln(os.Stderr, cli.FormatError(errorMessage(err)))
		}
		os.Exit(1)
	}
}

// errorMessage prefers the user-facing part of a UserError.
func errorMessage(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}

func initConfig(cmd *cobra.Command, _ []string) error {
	// .env values become APPRAISE_* environment overrides
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(config.ExpandPath(cfgFile))
	} else {
		// Search for config in standard locations
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	config.SetDefaults(viper.GetViper())

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	settings = loaded

	if err := setupLogging(cmd); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	slog.Debug("configuration loaded",
		"api_url", settings.APIURL,
		"timeout", settings.APITimeout,
		"config_file", viper.ConfigFileUsed(),
	)
	return nil
}

func setupLogging(cmd *cobra.Command) error {
	level, err := common.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if cmd.Annotations[logToFile] == "true" {
		f, err := openLogFile(settings.LogFile)
		if err != nil {
			return err
		}
		logFile = f
		w = f
	}

	return common.SetupLogger(w, level, settings.LogFormat)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304 -- path comes from the user's own config
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "appraise version %s\n", version)
		},
	}
}
