// Package config holds the blockbench configuration file format.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultIterations = 50
	DefaultWarmup     = 5
	DefaultSegments   = 64
	DefaultOutput     = "bench_results.json"
)

// Size is one benchmark grid shape.
type Size struct {
	ANumBlock int `yaml:"a_num_block"`
	BNumBlock int `yaml:"b_num_block"`
}

// Config drives a blockbench session.
type Config struct {
	Sizes      []Size `yaml:"sizes"`
	Iterations int    `yaml:"iterations"`
	Warmup     int    `yaml:"warmup"`
	Segments   int    `yaml:"segments"`
	Output     string `yaml:"output"`
	Seed       int64  `yaml:"seed"`
}

// DefaultConfig returns a config covering a small sweep of grid shapes.
func DefaultConfig() *Config {
	return &Config{
		Sizes: []Size{
			{ANumBlock: 32, BNumBlock: 32},
			{ANumBlock: 64, BNumBlock: 64},
			{ANumBlock: 128, BNumBlock: 128},
			{ANumBlock: 256, BNumBlock: 256},
		},
		Iterations: DefaultIterations,
		Warmup:     DefaultWarmup,
		Segments:   DefaultSegments,
		Output:     DefaultOutput,
	}
}

// Load reads a config file, filling unset fields from the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to a file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
