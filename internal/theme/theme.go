// Package theme holds the light/dark palettes the fields read every frame
// and persists the user's choice.
package theme

import (
	"fmt"
	"image/color"
	"strings"
)

// Mode selects a palette.
type Mode string

const (
	Dark  Mode = "dark"
	Light Mode = "light"
)

// ParseMode accepts "dark" or "light" in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	}
	return "", fmt.Errorf("unknown theme mode %q", s)
}

// Other returns the opposite mode.
func (m Mode) Other() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// Theme is the set of colors one mode paints with.
type Theme struct {
	// CanvasFade is the translucent wash the particle field paints each
	// frame; its alpha sets the trail length.
	CanvasFade color.NRGBA
	// WaveColor strokes the wave band; per-layer opacity is applied on top.
	WaveColor  color.NRGBA
	Background color.NRGBA
	Text       color.NRGBA
}

var themes = map[Mode]Theme{
	Dark: {
		CanvasFade: color.NRGBA{R: 10, G: 10, B: 15, A: 26},
		WaveColor:  color.NRGBA{R: 99, G: 102, B: 241, A: 255},
		Background: color.NRGBA{R: 10, G: 10, B: 15, A: 255},
		Text:       color.NRGBA{R: 226, G: 232, B: 240, A: 255},
	},
	Light: {
		CanvasFade: color.NRGBA{R: 250, G: 250, B: 250, A: 26},
		WaveColor:  color.NRGBA{R: 79, G: 70, B: 229, A: 255},
		Background: color.NRGBA{R: 250, G: 250, B: 250, A: 255},
		Text:       color.NRGBA{R: 30, G: 41, B: 59, A: 255},
	},
}

// For returns the palette of m, falling back to Dark.
func For(m Mode) Theme {
	if t, ok := themes[m]; ok {
		return t
	}
	return themes[Dark]
}

// Cache is the current theme as seen by the fields. The toggle writes it,
// the fields only read it.
type Cache struct {
	mode  Mode
	theme Theme
}

func NewCache(m Mode) *Cache {
	c := &Cache{}
	c.Set(m)
	return c
}

// Set switches to mode m.
func (c *Cache) Set(m Mode) {
	if _, ok := themes[m]; !ok {
		m = Dark
	}
	c.mode = m
	c.theme = themes[m]
}

// Toggle flips between light and dark and returns the new mode.
func (c *Cache) Toggle() Mode {
	c.Set(c.mode.Other())
	return c.mode
}

func (c *Cache) Mode() Mode   { return c.mode }
func (c *Cache) Theme() Theme { return c.theme }

func (c *Cache) CanvasFade() color.NRGBA { return c.theme.CanvasFade }
func (c *Cache) WaveColor() color.NRGBA  { return c.theme.WaveColor }
