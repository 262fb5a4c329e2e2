// Package config loads the plaza viewer settings from an optional TOML file,
// an optional .env file and PLAZA_* environment variables, in increasing
// order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/Carmen-Shannon/oxy-plaza/common"
	"github.com/Carmen-Shannon/oxy-plaza/engine/layout"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "plaza.toml"

// Config holds the viewer configuration.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Scene   SceneConfig   `toml:"scene"`
	Camera  CameraConfig  `toml:"camera"`
	Catalog CatalogConfig `toml:"catalog"`
	Assets  AssetsConfig  `toml:"assets"`
	Log     LogConfig     `toml:"log"`
}

type WindowConfig struct {
	Title       string  `toml:"title"`
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	VSync       bool    `toml:"vsync"`
	Transparent bool    `toml:"transparent"`
	MSAA        bool    `toml:"msaa"`
	FrameLimit  float64 `toml:"frame_limit"` // frames per second, 0 = uncapped
}

type SceneConfig struct {
	Preset            string `toml:"preset"`
	Effects           string `toml:"effects"`
	CompactBreakpoint int    `toml:"compact_breakpoint"`
	MedallionIcon     string `toml:"medallion_icon"`
}

type CameraConfig struct {
	AutoplayInterval float64 `toml:"autoplay_interval"`
	Damping          float64 `toml:"damping"`
	Autoplay         bool    `toml:"autoplay"`
}

type CatalogConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

type AssetsConfig struct {
	Dir      string `toml:"dir"`
	Workers  int    `toml:"workers"`
	IconSize int    `toml:"icon_size"`
}

type LogConfig struct {
	Level   string `toml:"level"`
	Pretty  bool   `toml:"pretty"`
	Profile bool   `toml:"profile"`
}

// Default returns the configuration used when no file or variables are present.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:       "Plaza",
			Width:       1280,
			Height:      720,
			VSync:       true,
			Transparent: true,
			MSAA:        true,
		},
		Scene: SceneConfig{
			Preset:            string(layout.PresetOverview),
			Effects:           layout.EffectFull.String(),
			CompactBreakpoint: 768,
		},
		Camera: CameraConfig{
			AutoplayInterval: 3,
			Damping:          0.35,
			Autoplay:         true,
		},
		Catalog: CatalogConfig{
			Path:  "assets/catalog.yaml",
			Watch: true,
		},
		Assets: AssetsConfig{
			Dir:      "assets",
			Workers:  4,
			IconSize: 128,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Load reads the configuration. A missing file at path leaves the defaults in
// place; a file that exists but does not parse is an error. The .env file in
// the working directory is loaded if present and never overrides variables
// already set in the process environment.
//
// Parameters:
//   - path: TOML file to read; empty means DefaultPath
//
// Returns:
//   - Config: the merged configuration
//   - error: a parse or validation error
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	path = common.Coalesce(os.Getenv("PLAZA_CONFIG"), path, DefaultPath)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := Decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode parses TOML on top of the values already in cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return err
	}
	return nil
}

// Encode renders cfg as TOML, e.g. to write a starter file.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

func (c *Config) applyEnv() {
	c.Window.Title = getEnv("PLAZA_TITLE", c.Window.Title)
	c.Window.Width = getEnvAsInt("PLAZA_WIDTH", c.Window.Width)
	c.Window.Height = getEnvAsInt("PLAZA_HEIGHT", c.Window.Height)
	c.Window.VSync = getEnvAsBool("PLAZA_VSYNC", c.Window.VSync)
	c.Window.Transparent = getEnvAsBool("PLAZA_TRANSPARENT", c.Window.Transparent)
	c.Window.MSAA = getEnvAsBool("PLAZA_MSAA", c.Window.MSAA)
	c.Window.FrameLimit = getEnvAsFloat("PLAZA_FRAME_LIMIT", c.Window.FrameLimit)

	c.Scene.Preset = getEnv("PLAZA_PRESET", c.Scene.Preset)
	c.Scene.Effects = getEnv("PLAZA_EFFECTS", c.Scene.Effects)
	c.Scene.CompactBreakpoint = getEnvAsInt("PLAZA_COMPACT_BREAKPOINT", c.Scene.CompactBreakpoint)
	c.Scene.MedallionIcon = getEnv("PLAZA_MEDALLION_ICON", c.Scene.MedallionIcon)

	c.Camera.AutoplayInterval = getEnvAsFloat("PLAZA_AUTOPLAY_INTERVAL", c.Camera.AutoplayInterval)
	c.Camera.Damping = getEnvAsFloat("PLAZA_DAMPING", c.Camera.Damping)
	c.Camera.Autoplay = getEnvAsBool("PLAZA_AUTOPLAY", c.Camera.Autoplay)

	c.Catalog.Path = getEnv("PLAZA_CATALOG", c.Catalog.Path)
	c.Catalog.Watch = getEnvAsBool("PLAZA_CATALOG_WATCH", c.Catalog.Watch)

	c.Assets.Dir = getEnv("PLAZA_ASSETS", c.Assets.Dir)
	c.Assets.Workers = getEnvAsInt("PLAZA_ASSET_WORKERS", c.Assets.Workers)
	c.Assets.IconSize = getEnvAsInt("PLAZA_ICON_SIZE", c.Assets.IconSize)

	c.Log.Level = getEnv("PLAZA_LOG_LEVEL", c.Log.Level)
	c.Log.Pretty = getEnvAsBool("PLAZA_LOG_PRETTY", c.Log.Pretty)
	c.Log.Profile = getEnvAsBool("PLAZA_PROFILE", c.Log.Profile)
}

// Validate checks ranges and that preset and effect names are known.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if _, ok := layout.LookupPreset(layout.PresetName(c.Scene.Preset)); !ok {
		return fmt.Errorf("scene.preset %q is not a known preset", c.Scene.Preset)
	}
	if _, err := layout.ParseEffectPreset(c.Scene.Effects); err != nil {
		return fmt.Errorf("scene.effects: %w", err)
	}
	if c.Scene.CompactBreakpoint <= 0 {
		return fmt.Errorf("scene.compact_breakpoint must be positive")
	}
	if c.Camera.AutoplayInterval <= 0 {
		return fmt.Errorf("camera.autoplay_interval must be positive")
	}
	if c.Camera.Damping < 0 {
		return fmt.Errorf("camera.damping must not be negative")
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path is required")
	}
	if c.Assets.Workers <= 0 {
		return fmt.Errorf("assets.workers must be positive")
	}
	return nil
}

// Effect returns the parsed effect preset. Validate has already rejected unknown names.
func (c Config) Effect() layout.EffectPreset {
	e, _ := layout.ParseEffectPreset(c.Scene.Effects)
	return e
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
