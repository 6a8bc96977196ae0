package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the search parameters. Adjust these to trade speed for coverage.
type Config struct {
	// MinSize and MaxSize bound the team size, anchor included.
	MinSize int `yaml:"min_size"`
	MaxSize int `yaml:"max_size"`
	// OriginTarget is the number of distinct active origins a team must reach.
	OriginTarget int `yaml:"origin_target"`
	// ResultCap stops the search once this many teams were accepted.
	ResultCap int `yaml:"result_cap"`
	// DisplayLimit is how many teams the renderers show.
	DisplayLimit int `yaml:"display_limit"`
	// TankRatioTarget is the default tank percentage when a request omits it.
	TankRatioTarget float64 `yaml:"tank_ratio_target"`
	// AnchorTrait selects the units appended last: exactly one trait, equal to
	// this name. Empty disables the anchor step.
	AnchorTrait string `yaml:"anchor_trait"`
	// AnchorOrigins is how many origins an anchor unit is guaranteed to add.
	AnchorOrigins int `yaml:"anchor_origins"`
}

func DefaultConfig() Config {
	return Config{
		MinSize:         4,
		MaxSize:         6,
		OriginTarget:    4,
		ResultCap:       1000,
		DisplayLimit:    50,
		TankRatioTarget: 60,
		AnchorTrait:     "Targon",
		AnchorOrigins:   1,
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.MinSize < 1 {
		errs = append(errs, fmt.Errorf("min_size must be >= 1, got %d", c.MinSize))
	}
	if c.MaxSize < c.MinSize {
		errs = append(errs, fmt.Errorf("max_size %d is below min_size %d", c.MaxSize, c.MinSize))
	}
	if c.OriginTarget < 0 {
		errs = append(errs, fmt.Errorf("origin_target must be >= 0, got %d", c.OriginTarget))
	}
	if c.ResultCap < 1 {
		errs = append(errs, fmt.Errorf("result_cap must be >= 1, got %d", c.ResultCap))
	}
	if c.DisplayLimit < 0 {
		errs = append(errs, fmt.Errorf("display_limit must be >= 0, got %d", c.DisplayLimit))
	}
	if c.AnchorOrigins < 0 {
		errs = append(errs, fmt.Errorf("anchor_origins must be >= 0, got %d", c.AnchorOrigins))
	}
	return errors.Join(errs...)
}

// Anchor returns the anchor policy described by the config, or nil.
func (c Config) Anchor() *AnchorPolicy {
	if c.AnchorTrait == "" {
		return nil
	}
	p := TraitAnchor(c.AnchorTrait)
	p.Origins = c.AnchorOrigins
	return p
}

// LoadConfig overlays a YAML file on DefaultConfig. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config (%s): %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config (%s): %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
