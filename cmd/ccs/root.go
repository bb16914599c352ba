package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"ccs/internal/config"
	"ccs/internal/logging"
	"ccs/internal/version"
)

var (
	// logFormatFlag is the CLI --log-format flag value
	logFormatFlag string
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "ccs",
	Short: "CCS - Cognitive Complexity Scanner",
	Long: `CCS (Cognitive Complexity Scanner) measures the cognitive complexity of
C, C++, and Python functions using tree-sitter parsing. It reports every
function with a per-increment breakdown so the score is auditable, and can
cache results, enforce thresholds, and baseline accepted debt.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("CCS version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human or json (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (default from config)")
}

// newLogger builds the logger for a command run.
// Precedence: CLI flag > CCS_LOG_* env var > config.json > defaults.
// When a log file is configured, output is mirrored there for 'ccs log'.
func newLogger(cfg *config.Config) *logging.Logger {
	format := logging.HumanFormat
	level := logging.InfoLevel
	if cfg != nil {
		if cfg.Logging.Format != "" {
			format = logging.Format(cfg.Logging.Format)
		}
		if cfg.Logging.Level != "" {
			level = logging.LogLevel(cfg.Logging.Level)
		}
	}
	if env := os.Getenv("CCS_LOG_FORMAT"); env != "" {
		format = logging.Format(env)
	}
	if env := os.Getenv("CCS_LOG_LEVEL"); env != "" {
		level = logging.LogLevel(env)
	}
	if logFormatFlag != "" {
		format = logging.Format(logFormatFlag)
	}
	if logLevelFlag != "" {
		level = logging.LogLevel(logLevelFlag)
	}

	var output io.Writer
	if path := logFilePath(cfg); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
			output = io.MultiWriter(os.Stderr, f)
		}
	}

	return logging.NewLogger(logging.Config{Format: format, Level: level, Output: output})
}

// logFilePath resolves the configured log file path, or "" when log-file
// mirroring is off. CCS_LOG_FILE overrides the config value.
func logFilePath(cfg *config.Config) string {
	if env := os.Getenv("CCS_LOG_FILE"); env != "" {
		return env
	}
	if cfg != nil {
		return cfg.Logging.File
	}
	return ""
}
