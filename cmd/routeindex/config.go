package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config is the CLI's on-disk configuration, loaded with gopkg.in/yaml.v3.
type config struct {
	Route struct {
		// File, when set, points at a JSON route file (see loadRouteFile).
		File string `yaml:"file"`
	} `yaml:"route"`

	Index struct {
		UseClusterLevel bool    `yaml:"use_cluster_level"`
		ClusterSize     int     `yaml:"cluster_size"`
		BufferSize      float64 `yaml:"buffer_size"`
	} `yaml:"index"`

	Postgis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
	} `yaml:"postgis"`
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &config{}
	cfg.Index.UseClusterLevel = true
	cfg.Index.ClusterSize = 50
	cfg.Index.BufferSize = 0.0001

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
