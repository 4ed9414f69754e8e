package tui

import (
	"log/slog"
	"time"

	"github.com/Veraticus/compras/internal/media"
	"github.com/Veraticus/compras/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme themes.Theme
	// Camera takes photos for the form. Nil uses the capture command
	// found on PATH.
	Camera         media.Capturer
	Logger         *slog.Logger
	// RecordDir, when set, receives a log and one text frame per update.
	RecordDir      string
	NoticeDuration time.Duration
	Width          int
	Height         int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:          themes.Default,
		NoticeDuration: 3 * time.Second,
		Width:          80,
		Height:         24,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithCamera sets the camera capturer.
func WithCamera(camera media.Capturer) Option {
	return func(c *Config) {
		c.Camera = camera
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithNoticeDuration sets how long toasts stay on screen.
func WithNoticeDuration(d time.Duration) Option {
	return func(c *Config) {
		c.NoticeDuration = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithRecordDir records every frame under dir.
func WithRecordDir(dir string) Option {
	return func(c *Config) {
		c.RecordDir = dir
	}
}
