package config

import (
	"fmt"
	"os"
	"strings"
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Profiles != "" && c.ProfilesDB != "" {
		return fmt.Errorf("profiles and profiles_db are mutually exclusive")
	}
	if c.SizeFactor <= 0 {
		return fmt.Errorf("size_factor must be positive, got %v", c.SizeFactor)
	}
	if c.InitialScale <= 0 {
		return fmt.Errorf("initial_scale must be positive, got %v", c.InitialScale)
	}
	if c.OpenDelay < 0 || c.CloseGrace < 0 {
		return fmt.Errorf("open_delay and close_grace must not be negative")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if !logLevels[c.Log.Level] {
		return fmt.Errorf("unknown log level %q (want debug, info, warn or error)", c.Log.Level)
	}
	return nil
}

// ValidateSources checks that the configured input files exist.
func (c *Config) ValidateSources() error {
	for _, p := range []struct{ key, path string }{
		{"profiles", c.Profiles},
		{"profiles_db", c.ProfilesDB},
		{"atlas", c.Atlas},
		{"atlas_image", c.AtlasImage},
		{"script", c.Script},
	} {
		if p.path == "" {
			continue
		}
		if _, err := os.Stat(p.path); os.IsNotExist(err) {
			return fmt.Errorf("%s does not exist: %s\nHint: set it in famexplorer.yaml or pass --%s", p.key, p.path, strings.ReplaceAll(p.key, "_", "-"))
		}
	}
	return nil
}
