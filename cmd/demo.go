package cmd

import (
	"errors"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/dialogs/internal/showcase"
	"github.com/marcus/dialogs/pkg/dialog"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Open the interactive dialog showcase",
	Long: `Opens a full-screen program that shows every built-in dialog:
confirm, prompt, fuzzy picker, markdown and form. Press q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("demo needs an interactive terminal")
		}

		// Logs on stderr would tear through the alt screen.
		logger := slog.Default()
		if logFile == "" {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}

		ctx, reg := dialog.Install(cmd.Context(), cfg.Registry(), dialog.WithLogger(logger))
		logger.Debug("dialog registry installed", "close_delay", reg.CloseDelay())

		p := tea.NewProgram(showcase.New(ctx, logger), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
