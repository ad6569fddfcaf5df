package engine

import (
	"github.com/spaghettifunk/ray/engine/config"
)

type ApplicationConfig struct {
	// Path of a TOML or YAML config file. Empty starts from the defaults.
	ConfigPath string
	// Config, when set, is used as is and ConfigPath is ignored.
	Config *config.Config
}

// Load resolves the configuration the engine boots with.
func (a *ApplicationConfig) Load() (*config.Config, error) {
	if a.Config != nil {
		if err := a.Config.Validate(); err != nil {
			return nil, err
		}
		return a.Config, nil
	}
	if a.ConfigPath == "" {
		return config.Default(), nil
	}
	return config.Load(a.ConfigPath)
}
