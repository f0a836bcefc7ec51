package config

import (
	"errors"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LoadAppConfig loads and validates the application configuration from the
// given path, falling back to config.yml in the working directory.
func LoadAppConfig(path string) (AppConfig, error) {
	paths := []string{path, "config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	v := validator.New()
	if err := v.Struct(cfg.Engine); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Data); err != nil {
		return AppConfig{}, err
	}
	for _, sc := range []ScenarioConfig{cfg.Before, cfg.After} {
		if err := v.Struct(sc); err != nil {
			return AppConfig{}, err
		}
	}
	if err := v.Struct(cfg.POIs); err != nil {
		return AppConfig{}, err
	}
	if cfg.POIs.ResolveCSVURL() == "" {
		return AppConfig{}, errors.New("pois: either csvURL or documentID is required")
	}
	if _, err := cfg.Before.DepartureTime(); err != nil {
		return AppConfig{}, err
	}
	if _, err := cfg.After.DepartureTime(); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if len(cfg.Analysis.Modes) == 0 {
		cfg.Analysis.Modes = []string{"WALK", "TRANSIT"}
	}
	if cfg.Analysis.MaxWalkMinutes == 0 {
		cfg.Analysis.MaxWalkMinutes = 30
	}
	if cfg.Analysis.MaxTripMinutes == 0 {
		cfg.Analysis.MaxTripMinutes = 150
	}
	if cfg.Analysis.WindowMinutes == 0 {
		cfg.Analysis.WindowMinutes = 30
	}
}
