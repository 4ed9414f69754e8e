package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/compras/internal/common"
	"github.com/Veraticus/compras/internal/media"
	"github.com/Veraticus/compras/internal/tui"
	"github.com/Veraticus/compras/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive shopping list",
		Long: `Open the full-screen shopping list.

The list shows stats, tabs for pending and purchased items, filters and an
add/edit form with live Yen, Real and Dollar conversion. Logs are written to
logging.file while the list is open.`,
		Args: cobra.NoArgs,
		RunE: runBrowse,
	}
	addBrowseFlags(cmd)
	return cmd
}

func addBrowseFlags(cmd *cobra.Command) {
	cmd.Flags().String("theme", "", fmt.Sprintf("color theme (%v)", themes.Names()))
	cmd.Flags().String("camera", "", "command that writes one JPEG frame to stdout")
	cmd.Flags().String("record", "", "directory to record every frame into, for debugging")
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	bindFlag(cmd, "tui.theme", "theme")
	bindFlag(cmd, "media.camera_command", "camera")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := initCatalog()
	if err != nil {
		return err
	}

	// The alternate screen owns stdout and stderr until the program exits.
	logFile, err := common.OpenLogFile(cfg.Logging.File)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := logFile.Close(); closeErr != nil {
			slog.Error("failed to close log file", "error", closeErr)
		}
	}()
	level, _ := common.ParseLevel(cfg.Logging.Level)
	common.SetupLogger(logFile, level, cfg.Logging.Format)

	if !themes.IsKnown(cfg.TUI.Theme) {
		slog.Warn("Unknown theme, using default", "theme", cfg.TUI.Theme)
	}

	opts := []tui.Option{
		tui.WithTheme(themes.GetTheme(cfg.TUI.Theme)),
		tui.WithLogger(slog.Default().With("component", "tui")),
	}
	if cfg.Media.CameraCommand != "" {
		opts = append(opts, tui.WithCamera(media.ParseCommand(cfg.Media.CameraCommand)))
	}
	if dir, _ := cmd.Flags().GetString("record"); dir != "" {
		opts = append(opts, tui.WithRecordDir(dir))
	}

	slog.Info("Starting interactive list", "base_url", client.BaseURL(), "theme", cfg.TUI.Theme)
	return tui.Run(ctx, client, opts...)
}

// bindFlag lets a changed flag override the configured value of key.
func bindFlag(cmd *cobra.Command, key, flag string) {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		viper.Set(key, f.Value.String())
	}
}
