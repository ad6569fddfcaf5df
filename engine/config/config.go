package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/ray/engine/core"
	"gopkg.in/yaml.v3"
)

type ApplicationConfig struct {
	Name string `toml:"name" yaml:"name"`
}

type WindowConfig struct {
	PosX   uint32 `toml:"pos_x" yaml:"pos_x"`
	PosY   uint32 `toml:"pos_y" yaml:"pos_y"`
	Width  uint32 `toml:"width" yaml:"width"`
	Height uint32 `toml:"height" yaml:"height"`
	// Resizable lets the user drag the window edges.
	Resizable bool `toml:"resizable" yaml:"resizable"`
}

// PostProcessConfig toggles the post-process stages of the render pipeline.
type PostProcessConfig struct {
	Fog          bool `toml:"fog" yaml:"fog"`
	FXAA         bool `toml:"fxaa" yaml:"fxaa"`
	SSAO         bool `toml:"ssao" yaml:"ssao"`
	DOF          bool `toml:"dof" yaml:"dof"`
	ToneMapping  bool `toml:"tone_mapping" yaml:"tone_mapping"`
	ColorGrading bool `toml:"color_grading" yaml:"color_grading"`
	// Lookup texture asset for color grading; empty uses the identity.
	ColorGradingLookup string `toml:"color_grading_lookup" yaml:"color_grading_lookup"`
}

type RendererConfig struct {
	// Type is one of "opengl", "gles2" or "gles3".
	Type         string            `toml:"type" yaml:"type"`
	Debug        bool              `toml:"debug" yaml:"debug"`
	SwapInterval int               `toml:"swap_interval" yaml:"swap_interval"`
	Wireframe    bool              `toml:"wireframe" yaml:"wireframe"`
	PostProcess  PostProcessConfig `toml:"post_process" yaml:"post_process"`
}

type AssetsConfig struct {
	Dir string `toml:"dir" yaml:"dir"`
	// HotReload watches Dir and reloads shaders, materials and textures on change.
	HotReload bool `toml:"hot_reload" yaml:"hot_reload"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

type Config struct {
	Application ApplicationConfig `toml:"application" yaml:"application"`
	Window      WindowConfig      `toml:"window" yaml:"window"`
	Renderer    RendererConfig    `toml:"renderer" yaml:"renderer"`
	Assets      AssetsConfig      `toml:"assets" yaml:"assets"`
	Log         LogConfig         `toml:"log" yaml:"log"`
}

func Default() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name: "Ray Engine",
		},
		Window: WindowConfig{
			PosX:      100,
			PosY:      100,
			Width:     1280,
			Height:    720,
			Resizable: true,
		},
		Renderer: RendererConfig{
			Type:         "opengl",
			SwapInterval: 1,
			PostProcess: PostProcessConfig{
				FXAA:        true,
				ToneMapping: true,
			},
		},
		Assets: AssetsConfig{
			Dir:       "assets",
			HotReload: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML or YAML file, picked by extension, on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to read config %s: %w", path, err)
		core.LogError(err.Error())
		return nil, err
	}
	cfg, err := Parse(filepath.Ext(path), data)
	if err != nil {
		err = fmt.Errorf("failed to parse config %s: %w", path, err)
		core.LogError(err.Error())
		return nil, err
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext (".toml", ".yaml" or ".yml").
func Parse(ext string, data []byte) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("config format '%s': %w", ext, core.ErrUnsupported)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return fmt.Errorf("window size %dx%d: %w", c.Window.Width, c.Window.Height, core.ErrInvalidDesc)
	}
	if c.Renderer.SwapInterval < 0 || c.Renderer.SwapInterval > 3 {
		return fmt.Errorf("swap interval %d: %w", c.Renderer.SwapInterval, core.ErrOutOfRange)
	}
	return nil
}

// Apply pushes the process-wide settings, currently the log level.
func (c *Config) Apply() {
	if c.Log.Level != "" {
		core.SetLogLevel(c.Log.Level)
	}
}
