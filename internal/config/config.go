// Package config loads the game configuration from YAML.
//
// Values start from defaults, are overlaid by the YAML file and finally by
// HELIUM_* environment variables:
//
//	window:
//	  title: "helium"
//	  width: 1280
//	  height: 720
//	  target_fps: 60
//	scenes:
//	  dir: "assets/scenes"
//	  boot: "preload.json"
//	  watch: true
//	logging:
//	  level: "info"     # debug, info, warn, error
//	  format: "text"    # text, json
//	  output: "stderr"  # stdout, stderr
//	debug:
//	  overlay: false
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scenes  ScenesConfig  `yaml:"scenes"`
	Logging LoggingConfig `yaml:"logging"`
	Debug   DebugConfig   `yaml:"debug"`
}

type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	TargetFPS int32  `yaml:"target_fps"`
	HighDPI   bool   `yaml:"high_dpi"`
}

// ScenesConfig locates scene files. Boot is the first scene loaded, relative to Dir.
type ScenesConfig struct {
	Dir   string `yaml:"dir"`
	Boot  string `yaml:"boot"`
	Watch bool   `yaml:"watch"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

type DebugConfig struct {
	Overlay bool `yaml:"overlay"`
}

// Load reads the YAML file at path on top of the defaults, applies
// environment overrides and validates the result. An empty path skips the
// file and starts from the defaults alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "helium",
			Width:     1280,
			Height:    720,
			TargetFPS: 60,
			HighDPI:   true,
		},
		Scenes: ScenesConfig{
			Dir:   "assets/scenes",
			Boot:  "preload.json",
			Watch: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HELIUM_SCENES_DIR"); v != "" {
		cfg.Scenes.Dir = v
	}
	if v := os.Getenv("HELIUM_BOOT_SCENE"); v != "" {
		cfg.Scenes.Boot = v
	}
	if v := os.Getenv("HELIUM_SCENES_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Scenes.Watch = b
		}
	}
	if v := os.Getenv("HELIUM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HELIUM_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("HELIUM_LOG_OUTPUT"); v != "" {
		cfg.Logging.Output = v
	}
}

func (c *Config) Validate() error {
	var errs []string

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, "window.width and window.height must be positive")
	}
	if c.Window.TargetFPS < 0 {
		errs = append(errs, "window.target_fps must not be negative")
	}
	if c.Scenes.Dir == "" {
		errs = append(errs, "scenes.dir is required")
	}
	if c.Scenes.Boot == "" {
		errs = append(errs, "scenes.boot is required")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, "logging.format must be text or json")
	}
	switch strings.ToLower(c.Logging.Output) {
	case "stdout", "stderr":
	default:
		errs = append(errs, "logging.output must be stdout or stderr")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
