package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/compras/internal/catalog"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the list over service until the user quits or ctx is done.
func Run(ctx context.Context, service catalog.Service, opts ...Option) error {
	if service == nil {
		return fmt.Errorf("catalog service is required")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Restore the terminal even when the program dies on a signal.
	defer func() {
		_, _ = os.Stdout.Write([]byte("\033[?1049l")) // Exit alternate screen
		_, _ = os.Stdout.Write([]byte("\033[?25h"))   // Show cursor
		_, _ = os.Stdout.Write([]byte("\033[m"))      // Reset colors
	}()

	m := New(ctx, service, opts...)
	var root tea.Model = m
	if rec := NewRecorder(m.config.RecordDir); rec.Enabled() {
		defer rec.Close()
		m.logger.Info("Recording frames", "dir", rec.Dir())
		root = recordedModel{Model: m, rec: rec}
	}

	program := tea.NewProgram(
		root,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
