package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "opengl", cfg.Renderer.Type)
	assert.Equal(t, uint32(1280), cfg.Window.Width)
	assert.Equal(t, uint32(720), cfg.Window.Height)
	assert.True(t, cfg.Renderer.PostProcess.FXAA)
	assert.False(t, cfg.Renderer.PostProcess.Fog)
	assert.NoError(t, cfg.Validate())
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
[application]
name = "demo"

[window]
width = 800
height = 600

[renderer]
type = "gles3"
swap_interval = 0
wireframe = true

[renderer.post_process]
fog = true
fxaa = false

[log]
level = "debug"
`)
	cfg, err := Parse(".toml", data)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Application.Name)
	assert.Equal(t, uint32(800), cfg.Window.Width)
	assert.Equal(t, "gles3", cfg.Renderer.Type)
	assert.Equal(t, 0, cfg.Renderer.SwapInterval)
	assert.True(t, cfg.Renderer.Wireframe)
	assert.True(t, cfg.Renderer.PostProcess.Fog)
	assert.False(t, cfg.Renderer.PostProcess.FXAA)
	// untouched keys keep their defaults
	assert.True(t, cfg.Renderer.PostProcess.ToneMapping)
	assert.Equal(t, "assets", cfg.Assets.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
renderer:
  type: gles2
  post_process:
    ssao: true
assets:
  dir: data
  hot_reload: false
`)
	cfg, err := Parse(".yml", data)
	require.NoError(t, err)
	assert.Equal(t, "gles2", cfg.Renderer.Type)
	assert.True(t, cfg.Renderer.PostProcess.SSAO)
	assert.Equal(t, "data", cfg.Assets.Dir)
	assert.False(t, cfg.Assets.HotReload)
	assert.Equal(t, uint32(1280), cfg.Window.Width)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(".json", []byte("{}"))
	assert.ErrorIs(t, err, core.ErrUnsupported)

	_, err = Parse(".toml", []byte("[window]\nwidth = 0\n"))
	assert.ErrorIs(t, err, core.ErrInvalidDesc)

	_, err = Parse(".yaml", []byte("renderer:\n  swap_interval: 9\n"))
	assert.ErrorIs(t, err, core.ErrOutOfRange)

	_, err = Parse(".toml", []byte("[window\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ray.toml")
	require.NoError(t, os.WriteFile(path, []byte("[application]\nname = \"file\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Application.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
