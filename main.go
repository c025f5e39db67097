package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/ambientfx/internal/config"
	"github.com/iburimskiy/ambientfx/internal/game"
)

func main() {
	app, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		fatal(slog.Default(), "invalid configuration", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: app.LogLevel}))
	slog.SetDefault(logger)

	ebiten.SetWindowSize(app.Width, app.Height)
	ebiten.SetWindowTitle("ambientfx - F3: HUD, M: system reduced motion, O: override, Esc/Q: Quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := game.New(app, logger)
	logger.Info("starting", "width", app.Width, "height", app.Height, "intensity", app.Options.Intensity, "seed", app.Seed)
	err = ebiten.RunGame(g)
	g.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		fatal(logger, "run failed", err)
	}
}

// fatal logs, shows a native dialog where one is available, and exits.
func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "err", err)
	if derr := zenity.Error(msg+": "+err.Error(), zenity.Title("ambientfx"), zenity.ErrorIcon); derr != nil {
		log.Warn("error dialog unavailable", "err", derr)
	}
	os.Exit(1)
}
