package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	// DefaultVolume maps to unity gain
	DefaultVolume = 50
)

// Prefs holds the locally persisted preferences
type Prefs struct {
	SoundVolume int    `json:"sound_volume"`
	Theme       string `json:"theme"`
}

// Default returns the preferences a fresh install starts with
func Default() Prefs {
	return Prefs{
		SoundVolume: DefaultVolume,
		Theme:       ThemeDark,
	}
}

// Normalize clamps the volume to 0..100 and falls back to the dark
// theme for unknown values
func (p *Prefs) Normalize() {
	if p.SoundVolume < 0 {
		p.SoundVolume = 0
	}
	if p.SoundVolume > 100 {
		p.SoundVolume = 100
	}
	if p.Theme != ThemeDark && p.Theme != ThemeLight {
		p.Theme = ThemeDark
	}
}

// Gain maps the 0..100 volume to a playback gain where 50 is unity:
// 0 is silent, 50 plays at 1.0 and 100 doubles to 2.0
func (p Prefs) Gain() float64 {
	return float64(p.SoundVolume) / 50.0
}

// Load reads preferences from path, returning defaults when the file
// does not exist yet
func Load(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read preferences: %w", err)
	}

	p := Default()
	if err := sonic.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("failed to parse preferences: %w", err)
	}
	p.Normalize()
	return p, nil
}

// Save writes preferences to path, creating parent directories as
// needed
func Save(path string, p Prefs) error {
	p.Normalize()

	data, err := sonic.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}
