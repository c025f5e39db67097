package config

import (
	"errors"
	"log/slog"
	"testing"
)

func TestParseIntensity(t *testing.T) {
	tests := []struct {
		in   string
		want Intensity
	}{
		{"low", Low},
		{"sm", Low},
		{"MD", Medium},
		{"medium", Medium},
		{"", Medium},
		{" high ", High},
		{"lg", High},
	}
	for _, tt := range tests {
		got, err := ParseIntensity(tt.in)
		if err != nil {
			t.Errorf("ParseIntensity(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseIntensity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseIntensity("extreme"); !errors.Is(err, ErrUnknownIntensity) {
		t.Errorf("ParseIntensity(extreme) error = %v, want ErrUnknownIntensity", err)
	}
}

func TestPresetTables(t *testing.T) {
	tests := []struct {
		i                      Intensity
		density, speed, cellPx float64
	}{
		{Low, 0.5, 0.7, 60},
		{Medium, 1, 1, 80},
		{High, 1.5, 1.3, 100},
	}
	for _, tt := range tests {
		if got := tt.i.DensityMultiplier(); got != tt.density {
			t.Errorf("%v density = %v, want %v", tt.i, got, tt.density)
		}
		if got := tt.i.SpeedMultiplier(); got != tt.speed {
			t.Errorf("%v speed = %v, want %v", tt.i, got, tt.speed)
		}
		if got := tt.i.CellSize(); got != tt.cellPx {
			t.Errorf("%v cell = %v, want %v", tt.i, got, tt.cellPx)
		}
	}
}

func TestOptionsSelectors(t *testing.T) {
	o := DefaultOptions()
	if o.ParticleDensity() != Medium {
		t.Errorf("density = %v, want medium", o.ParticleDensity())
	}
	if o.GridCell() != 80 {
		t.Errorf("cell = %v, want 80", o.GridCell())
	}

	high := High
	o.Density = &high
	o.CellSize = 42
	if o.ParticleDensity() != High {
		t.Errorf("density override = %v, want high", o.ParticleDensity())
	}
	if o.GridCell() != 42 {
		t.Errorf("cell override = %v, want 42", o.GridCell())
	}
}

func TestLoadDefaults(t *testing.T) {
	app, err := Load(nil, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if app.Width != WindowWidth || app.Height != WindowHeight {
		t.Errorf("size = %dx%d, want %dx%d", app.Width, app.Height, WindowWidth, WindowHeight)
	}
	if app.Options.Intensity != Medium || !app.Options.Interactive {
		t.Errorf("options = %+v, want medium interactive", app.Options)
	}
	if app.ReducedMotionOverride {
		t.Error("override should default to false")
	}
	if app.LogLevel != slog.LevelInfo {
		t.Errorf("level = %v, want info", app.LogLevel)
	}
}

func TestLoadFlagsAndEnv(t *testing.T) {
	env := map[string]string{
		"AMBIENTFX_INTENSITY":      "lg",
		"AMBIENTFX_REDUCED_MOTION": "true",
		"AMBIENTFX_LOG_LEVEL":      "debug",
	}
	app, err := Load([]string{"-density", "sm", "-scrim", "-interactive=false"}, func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if app.Options.Intensity != High {
		t.Errorf("intensity = %v, want high", app.Options.Intensity)
	}
	if app.Options.ParticleDensity() != Low {
		t.Errorf("density = %v, want low", app.Options.ParticleDensity())
	}
	if !app.Options.Scrim || app.Options.Interactive {
		t.Errorf("scrim/interactive = %v/%v, want true/false", app.Options.Scrim, app.Options.Interactive)
	}
	if !app.ReducedMotionOverride {
		t.Error("override should be set from env")
	}
	if app.LogLevel != slog.LevelDebug {
		t.Errorf("level = %v, want debug", app.LogLevel)
	}
}

func TestLoadOverrideNeedsLiteralTrue(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{" true ", true},
		{"TRUE", false},
		{"True", false},
		{"yes", false},
		{"1", false},
		{"", false},
	}
	for _, tt := range tests {
		env := func(k string) string {
			if k == "AMBIENTFX_REDUCED_MOTION" {
				return tt.value
			}
			return ""
		}
		app, err := Load(nil, env)
		if err != nil {
			t.Fatalf("Load(%q): %v", tt.value, err)
		}
		if app.ReducedMotionOverride != tt.want {
			t.Errorf("override for %q = %v, want %v", tt.value, app.ReducedMotionOverride, tt.want)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load([]string{"-intensity", "huge"}, nil); !errors.Is(err, ErrUnknownIntensity) {
		t.Errorf("bad intensity error = %v", err)
	}
	if _, err := Load([]string{"-width", "0"}, nil); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("bad size error = %v", err)
	}
	if _, err := Load([]string{"-nope"}, nil); err == nil {
		t.Error("unknown flag should fail")
	}
}
