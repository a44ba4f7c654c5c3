// Package config reads and writes the application settings file.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mkarlsen/blink/internal/fonts"
	"github.com/mkarlsen/blink/internal/reader"
)

const fileName = "settings.yaml"

// Settings is the application configuration.
type Settings struct {
	Storage  StorageSettings  `yaml:"storage"`
	Defaults DefaultsSettings `yaml:"defaults"`
	Debug    bool             `yaml:"debug"`
}

// StorageSettings selects the persistence backend.
type StorageSettings struct {
	// Backend is "fs" or "memory".
	Backend string `yaml:"backend"`
}

// DefaultsSettings seeds newly created tabs.
type DefaultsSettings struct {
	WPM      int     `yaml:"wpm"`
	FontName string  `yaml:"font_name"`
	FontSize float64 `yaml:"font_size"`
}

// Default returns the configuration used when no settings file exists.
func Default() *Settings {
	return &Settings{
		Storage: StorageSettings{Backend: "fs"},
		Defaults: DefaultsSettings{
			WPM:      reader.DefaultWPM,
			FontName: fonts.DefaultName,
			FontSize: fonts.DefaultSize,
		},
	}
}

// Dir returns the config directory, $XDG_CONFIG_HOME/blink.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "blink")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "blink")
}

// Load reads the settings file, falling back to defaults when it is
// missing or unreadable.
func Load() *Settings {
	s := Default()
	data, err := os.ReadFile(filepath.Join(Dir(), fileName))
	if err != nil {
		return s
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return Default()
	}
	if s.Defaults.WPM == 0 {
		s.Defaults.WPM = reader.DefaultWPM
	}
	if s.Defaults.FontSize == 0 {
		s.Defaults.FontSize = fonts.DefaultSize
	}
	if s.Defaults.FontName == "" {
		s.Defaults.FontName = fonts.DefaultName
	}
	return s
}

// Save writes the settings file, creating the config dir as needed.
func Save(s *Settings) error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(Dir(), fileName), data, 0644)
}
