package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marcus/dialogs/internal/config"
)

var (
	version string

	configPath string
	logLevel   string
	logFormat  string
	logFile    string

	cfg *config.Config

	// logOut is the open --log-file, closed after the command runs.
	logOut *os.File
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "dialogs",
	Short: "Stacked modal dialogs for terminal programs",
	Long: `dialogs - A registry of modal dialogs for Bubble Tea programs.

Dialogs are opened from anywhere in the program, rendered on top of the host
view in the order they were added, and kept on screen for a short delay after
they close.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		applyLogFlags(cmd.Flags(), loaded)
		cfg = loaded
		return setupLogger(cmd.ErrOrStderr(), loaded.Log)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog(cmd.ErrOrStderr())
	},
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	// Post-run hooks are skipped when a command fails.
	closeLog(os.Stderr)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	addLogFlags(rootCmd.PersistentFlags())
}

func addLogFlags(fs *pflag.FlagSet) {
	fs.StringVar(&configPath, "config", "", "config file (default $DIALOGS_CONFIG or the user config dir)")
	fs.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&logFormat, "log-format", "", "log format: text or json")
	fs.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
}

// applyLogFlags lets explicitly set flags win over the config file.
func applyLogFlags(fs *pflag.FlagSet, c *config.Config) {
	if fs.Changed("log-level") {
		c.Log.Level = logLevel
	}
	if fs.Changed("log-format") {
		c.Log.Format = logFormat
	}
}

func setupLogger(stderr io.Writer, lc config.LogConfig) error {
	level, err := parseLevel(lc.Level)
	if err != nil {
		return err
	}

	w := stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logOut = f
		w = f
	}

	slog.SetDefault(slog.New(newHandler(w, lc.Format, level)))
	return nil
}

// closeLog closes the --log-file, if any, and points the default logger
// back at stderr.
func closeLog(stderr io.Writer) error {
	if logOut == nil {
		return nil
	}
	f := logOut
	logOut = nil
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, nil)))
	if err := f.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
