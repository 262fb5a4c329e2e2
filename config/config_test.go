package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-plaza/engine/layout"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, layout.EffectFull, cfg.Effect())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, "plaza.toml", `
[window]
width = 800
height = 600
vsync = false

[scene]
preset = "heroic"
effects = "minimal"

[camera]
autoplay_interval = 5.5

[catalog]
path = "chains.yaml"
watch = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.False(t, cfg.Window.VSync)
	assert.Equal(t, "Plaza", cfg.Window.Title, "unset keys keep their defaults")
	assert.Equal(t, "heroic", cfg.Scene.Preset)
	assert.Equal(t, layout.EffectMinimal, cfg.Effect())
	assert.InDelta(t, 5.5, cfg.Camera.AutoplayInterval, 1e-9)
	assert.Equal(t, "chains.yaml", cfg.Catalog.Path)
	assert.False(t, cfg.Catalog.Watch)
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, "plaza.toml", "[window]\nwidth = 800\n")
	t.Setenv("PLAZA_WIDTH", "1024")
	t.Setenv("PLAZA_AUTOPLAY", "false")
	t.Setenv("PLAZA_EFFECTS", "performance")
	t.Setenv("PLAZA_HEIGHT", "not-a-number")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "unparseable values fall back")
	assert.False(t, cfg.Camera.Autoplay)
	assert.Equal(t, layout.EffectPerformance, cfg.Effect())
}

func TestDotEnvFillsUnsetVariables(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PLAZA_TITLE=From Dotenv\n"), 0o644))
	t.Setenv("PLAZA_TITLE", "")
	require.NoError(t, os.Unsetenv("PLAZA_TITLE"))

	cfg, err := Load(filepath.Join(dir, "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "From Dotenv", cfg.Window.Title)
}

func TestUnknownKeysRejected(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, "plaza.toml", "[window]\nwidht = 800\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widht")
}

func TestMalformedFileRejected(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, "plaza.toml", "[window\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"unknown preset", func(c *Config) { c.Scene.Preset = "gallery" }, "scene.preset"},
		{"unknown effect", func(c *Config) { c.Scene.Effects = "ultra" }, "scene.effects"},
		{"breakpoint", func(c *Config) { c.Scene.CompactBreakpoint = 0 }, "compact_breakpoint"},
		{"interval", func(c *Config) { c.Camera.AutoplayInterval = 0 }, "autoplay_interval"},
		{"damping", func(c *Config) { c.Camera.Damping = -1 }, "damping"},
		{"catalog", func(c *Config) { c.Catalog.Path = "" }, "catalog.path"},
		{"workers", func(c *Config) { c.Assets.Workers = 0 }, "assets.workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestEncodeRoundTripsThroughDecode(t *testing.T) {
	want := Default()
	want.Scene.Preset = "ensemble"
	data, err := Encode(want)
	require.NoError(t, err)

	var got Config
	require.NoError(t, Decode(data, &got))
	assert.Equal(t, want, got)
}
