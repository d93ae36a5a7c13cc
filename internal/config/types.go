// Package config provides configuration management for the famexplorer CLI.
package config

import "time"

// Defaults applied before any file, environment or flag layer.
const (
	DefaultAtlas         = "atlas.json"
	DefaultAtlasImage    = "atlas.png"
	DefaultSizeFactor    = 8.0
	DefaultInitialScale  = 4.5
	DefaultOpenDelay     = 50 * time.Millisecond
	DefaultCloseGrace    = 200 * time.Millisecond
	DefaultWindowWidth   = 1280
	DefaultWindowHeight  = 720
	DefaultWindowTitle   = "fam explorer"
	DefaultLogLevel      = "info"
	DefaultScreenshotDir = "screenshots"
)

// Config is the resolved CLI configuration.
type Config struct {
	// Profiles is a JSON profile file. ProfilesDB is a SQLite store built
	// by `famexplorer import`. At most one of them is set.
	Profiles   string `koanf:"profiles"`
	ProfilesDB string `koanf:"profiles_db"`

	Atlas      string `koanf:"atlas"`
	AtlasImage string `koanf:"atlas_image"`

	SizeFactor   float64       `koanf:"size_factor"`
	InitialScale float64       `koanf:"initial_scale"`
	OpenDelay    time.Duration `koanf:"open_delay"`
	CloseGrace   time.Duration `koanf:"close_grace"`

	Window WindowConfig `koanf:"window"`
	Log    LogConfig    `koanf:"log"`

	// Watch reloads profiles and atlas when their files change.
	Watch bool `koanf:"watch"`
	Debug bool `koanf:"debug"`

	// Script is an optional JSON input script replayed by `run`.
	Script        string `koanf:"script"`
	ScreenshotDir string `koanf:"screenshot_dir"`

	// ProjectRoot is the directory relative paths were resolved against.
	ProjectRoot string `koanf:"-"`
}

// WindowConfig sizes the game window.
type WindowConfig struct {
	Width      int    `koanf:"width"`
	Height     int    `koanf:"height"`
	Title      string `koanf:"title"`
	Fullscreen bool   `koanf:"fullscreen"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `koanf:"level"`
	File  string `koanf:"file"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"atlas":             DefaultAtlas,
		"atlas_image":       DefaultAtlasImage,
		"size_factor":       DefaultSizeFactor,
		"initial_scale":     DefaultInitialScale,
		"open_delay":        DefaultOpenDelay.String(),
		"close_grace":       DefaultCloseGrace.String(),
		"window.width":      DefaultWindowWidth,
		"window.height":     DefaultWindowHeight,
		"window.title":      DefaultWindowTitle,
		"window.fullscreen": false,
		"log.level":         DefaultLogLevel,
		"watch":             false,
		"debug":             false,
		"screenshot_dir":    DefaultScreenshotDir,
	}
}
