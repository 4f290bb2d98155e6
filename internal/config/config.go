package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640
	WindowTitle  = "Portfolio Backdrop - T: theme, O: soundtrack, Space: pause, Esc/Q: quit"
	AppName      = "portfolio_backdrop"

	// Height of the wave band section below the hero.
	BandHeight = 220

	// Scrolling
	ScrollStep   = 60.0
	ScrollEasing = 0.15

	// Visibility trigger: share of a section that must be on screen.
	VisibleThreshold = 0.1

	// Terminal backend: canvas units per character cell.
	CellWidth    = 8
	CellHeight   = 16
	TermTickMs   = 16
	TermBandRows = 10

	// Soundtrack
	VisualRingSize  = 8192
	SmoothingFactor = 0.6
)

// Settings is the optional YAML configuration file.
type Settings struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	BandHeight int    `yaml:"bandHeight"`
	Theme      string `yaml:"theme"`
	Soundtrack string `yaml:"soundtrack"`
	// Seed fixes the particle layout; 0 picks a time-based seed.
	Seed    int64 `yaml:"seed"`
	Verbose bool  `yaml:"verbose"`
}

// Default returns the settings used when no file is given.
func Default() *Settings {
	return &Settings{
		Width:      WindowWidth,
		Height:     WindowHeight,
		BandHeight: BandHeight,
		Theme:      "dark",
	}
}

// Load reads a YAML settings file over the defaults. Fields missing from
// the file keep their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return s, nil
}

// Validate checks ranges.
func (s *Settings) Validate() error {
	var errs []error
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", s.Width, s.Height))
	}
	if s.BandHeight <= 0 {
		errs = append(errs, fmt.Errorf("bandHeight must be positive, got %d", s.BandHeight))
	}
	if s.Theme != "dark" && s.Theme != "light" {
		errs = append(errs, fmt.Errorf("theme must be dark or light, got %q", s.Theme))
	}
	return errors.Join(errs...)
}
