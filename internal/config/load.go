package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// App is everything the demo host needs at startup.
type App struct {
	Width, Height int
	Options       Options
	// ReducedMotionOverride is OR'd with the system preference, never suppresses it.
	ReducedMotionOverride bool
	// SystemReducedMotion seeds the host's system-level preference.
	SystemReducedMotion bool
	LogLevel            slog.Level
	DebugHUD            bool
	Seed                uint64
}

// Load parses args with env fallbacks. getenv may be nil.
func Load(args []string, getenv func(string) string) (App, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	envOr := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	app := App{Options: DefaultOptions()}

	fs := flag.NewFlagSet("ambientfx", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	intensity := fs.String("intensity", envOr("AMBIENTFX_INTENSITY", "md"), "intensity: low|md|high")
	density := fs.String("density", envOr("AMBIENTFX_DENSITY", ""), "particle density, defaults to intensity")
	fs.IntVar(&app.Width, "width", WindowWidth, "window width")
	fs.IntVar(&app.Height, "height", WindowHeight, "window height")
	fs.BoolVar(&app.Options.Interactive, "interactive", true, "enable pointer-driven effects")
	fs.BoolVar(&app.Options.Scrim, "scrim", false, "request a readability overlay")
	fs.Float64Var(&app.Options.CellSize, "cell", 0, "grid cell size override in pixels")
	fs.BoolVar(&app.Options.Blobs, "blobs", true, "ambient blob pass")
	fs.BoolVar(&app.Options.Grid, "grid", true, "ambient grid pass")
	fs.BoolVar(&app.Options.Beam, "beam", true, "ambient beam pass")
	reduced := fs.String("reduced-motion", envOr("AMBIENTFX_REDUCED_MOTION", "false"), "force reduced motion")
	fs.BoolVar(&app.SystemReducedMotion, "system-reduced-motion", false, "initial system reduced-motion preference")
	level := fs.String("log-level", envOr("AMBIENTFX_LOG_LEVEL", "info"), "debug|info|warn|error")
	fs.BoolVar(&app.DebugHUD, "hud", false, "show the debug overlay")
	fs.Uint64Var(&app.Seed, "seed", 0, "random seed, 0 picks one")

	if err := fs.Parse(args); err != nil {
		return app, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if app.Options.Intensity, err = ParseIntensity(*intensity); err != nil {
		return app, err
	}
	if *density != "" {
		d, err := ParseIntensity(*density)
		if err != nil {
			return app, fmt.Errorf("density: %w", err)
		}
		app.Options.Density = &d
	}
	if app.Width <= 0 || app.Height <= 0 {
		return app, fmt.Errorf("%w: %dx%d", ErrInvalidSize, app.Width, app.Height)
	}

	// Only the literal "true" counts, like a document attribute.
	app.ReducedMotionOverride = strings.TrimSpace(*reduced) == "true"

	if err := app.LogLevel.UnmarshalText([]byte(*level)); err != nil {
		return app, fmt.Errorf("log level %q: %w", *level, err)
	}
	return app, nil
}
