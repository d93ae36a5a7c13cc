package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "FAMEXPLORER_"

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
)

// sections are the nested config blocks. Env and flag names reach them with
// an underscore or dash after the section name: FAMEXPLORER_WINDOW_WIDTH and
// --window-width both set window.width.
var sections = []string{"window", "log"}

// pathKeys are resolved against the project root when relative.
var pathKeys = []string{"profiles", "profiles_db", "atlas", "atlas_image", "script", "screenshot_dir", "log.file"}

// findConfigFile finds the config file to use.
// Priority: explicit path > famexplorer.yaml > famexplorer.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"famexplorer.yaml", "famexplorer.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// keyFor maps a snake_case name onto a koanf key, moving section prefixes to
// dotted form.
func keyFor(name string) string {
	for _, s := range sections {
		if strings.HasPrefix(name, s+"_") {
			return s + "." + strings.TrimPrefix(name, s+"_")
		}
	}
	return name
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
}

// GetConfigFileUsed returns the config file the last Load read, if any.
func GetConfigFileUsed() string { return configFileUsed }

// Load loads configuration from defaults, file, environment and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// A .env file in the working directory is read into the environment first.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")
	_ = godotenv.Load()

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment: FAMEXPLORER_LOG_LEVEL -> log.level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return keyFor(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set. Paths given on the command line
	// are relative to the working directory, not the project root.
	flagPaths := map[string]string{}
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := keyFor(strings.ReplaceAll(f.Name, "-", "_"))
			if isPathKey(key) && f.Value.String() != "" {
				if abs, err := filepath.Abs(f.Value.String()); err == nil {
					flagPaths[key] = abs
				}
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Resolve relative paths against the config file's directory, or the
	// working directory without one.
	cfg.ProjectRoot = projectRoot(configFileUsed)
	for _, key := range pathKeys {
		p := pathField(&cfg, key)
		if abs, ok := flagPaths[key]; ok {
			*p = abs
			continue
		}
		*p = resolvePathRelativeTo(*p, cfg.ProjectRoot)
	}
	return &cfg, nil
}

func isPathKey(key string) bool {
	for _, p := range pathKeys {
		if p == key {
			return true
		}
	}
	return false
}

func pathField(cfg *Config, key string) *string {
	switch key {
	case "profiles":
		return &cfg.Profiles
	case "profiles_db":
		return &cfg.ProfilesDB
	case "atlas":
		return &cfg.Atlas
	case "atlas_image":
		return &cfg.AtlasImage
	case "script":
		return &cfg.Script
	case "screenshot_dir":
		return &cfg.ScreenshotDir
	case "log.file":
		return &cfg.Log.File
	}
	panic("config: unknown path key " + key)
}

func projectRoot(cfgFile string) string {
	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			return filepath.Dir(abs)
		}
	}
	cwd, _ := os.Getwd()
	if cwd == "" {
		cwd = "."
	}
	return cwd
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
