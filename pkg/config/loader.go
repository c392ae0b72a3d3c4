package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/transitpanel/transitpanel/pkg/util"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// Load reads, validates and defaults the application configuration. The path
// argument wins over the TRANSITPANEL_CONFIG environment variable, which wins
// over ./transitpanel.yaml.
func Load(path string) error {
	if path == "" {
		path = util.GetEnvironmentVariable("TRANSITPANEL_CONFIG", "transitpanel.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}

	applyDefaults(&cfg)

	Config = cfg

	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.UpdateInterval == 0 {
		cfg.UpdateInterval = Duration(60 * time.Second)
	}
	if cfg.InitialRetryDelay == 0 {
		cfg.InitialRetryDelay = Duration(10 * time.Second)
	}

	if cfg.Display.MaximumEntries == 0 {
		cfg.Display.MaximumEntries = 2
	}
	if cfg.Display.MaxLettersForDestination == 0 {
		cfg.Display.MaxLettersForDestination = 22
	}
	if cfg.Display.MaxLettersForTime == 0 {
		cfg.Display.MaxLettersForTime = 16
	}
	if cfg.Display.OldThreshold == 0 {
		cfg.Display.OldThreshold = 0.1
	}
	if cfg.Display.OldUpdateOpacity == 0 {
		cfg.Display.OldUpdateOpacity = 0.5
	}

	if cfg.History.MaxEntries == 0 {
		cfg.History.MaxEntries = 360
	}
	if cfg.History.MaxAge == 0 {
		cfg.History.MaxAge = Duration(24 * time.Hour)
	}
}
