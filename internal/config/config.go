package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the viewer and bench tool settings. Values come from
// tacmap.cfg.json in the config directory, with defaults for anything
// the file omits. A missing file is not an error.
type Config struct {
	LogLevel string         `json:"logLevel" mapstructure:"logLevel"`
	Window   WindowConfig   `json:"window" mapstructure:"window"`
	Map      MapConfig      `json:"map" mapstructure:"map"`
	Scenario ScenarioConfig `json:"scenario" mapstructure:"scenario"`
}

// WindowConfig sets the viewer window.
type WindowConfig struct {
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
	Title  string `json:"title" mapstructure:"title"`
}

// MapConfig points at optional map data.
type MapConfig struct {
	// FootprintsPath is a GeoJSON file of building footprint polygons
	// used as sightline occluders. Empty means no buildings.
	FootprintsPath string `json:"footprintsPath" mapstructure:"footprintsPath"`
}

// ScenarioConfig sets the generated demo scenario.
type ScenarioConfig struct {
	Seed       int64 `json:"seed" mapstructure:"seed"`
	Friendlies int   `json:"friendlies" mapstructure:"friendlies"`
	Hostiles   int   `json:"hostiles" mapstructure:"hostiles"`
	Neutrals   int   `json:"neutrals" mapstructure:"neutrals"`
}

// Load reads tacmap.cfg.json from configDir and returns the merged
// configuration. File values override defaults; a missing file yields
// pure defaults.
func Load(configDir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logLevel", "info")

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 800)
	v.SetDefault("window.title", "tacmap")

	v.SetDefault("map.footprintsPath", "")

	v.SetDefault("scenario.seed", 1)
	v.SetDefault("scenario.friendlies", 4)
	v.SetDefault("scenario.hostiles", 8)
	v.SetDefault("scenario.neutrals", 6)

	v.SetConfigName("tacmap.cfg.json")
	v.AddConfigPath(configDir)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}
