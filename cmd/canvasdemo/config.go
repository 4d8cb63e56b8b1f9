package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the demo settings. Every field can also be set by a flag;
// flags win over the file.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Zoom     ZoomConfig     `yaml:"zoom"`
	History  HistoryConfig  `yaml:"history"`
	Text     TextConfig     `yaml:"text"`
	Output   OutputConfig   `yaml:"output"`

	// Input is an optional document loaded instead of the built-in scene.
	Input string `yaml:"input"`
	// Images are added to the scene in a row below the built-in content.
	Images []string `yaml:"images"`
}

// ViewportConfig is the size of the rendered frame in pixels.
type ViewportConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// ZoomConfig bounds the camera zoom.
type ZoomConfig struct {
	Min     float32 `yaml:"min"`
	Max     float32 `yaml:"max"`
	Initial float32 `yaml:"initial"`
}

// HistoryConfig controls the undo engine.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// TextConfig selects the label font.
type TextConfig struct {
	Font      string `yaml:"font"`
	CacheSize int    `yaml:"cache_size"`
}

// OutputConfig names the files written at the end of the session.
type OutputConfig struct {
	PNG  string `yaml:"png"`
	YAML string `yaml:"yaml"`
}

func (c *Config) defaults() {
	if c.Viewport.Width <= 0 {
		c.Viewport.Width = 800
	}
	if c.Viewport.Height <= 0 {
		c.Viewport.Height = 600
	}
	if c.Zoom.Min <= 0 {
		c.Zoom.Min = 0.1
	}
	if c.Zoom.Max <= 0 {
		c.Zoom.Max = 10
	}
	if c.Zoom.Initial <= 0 {
		c.Zoom.Initial = 1
	}
	if c.History.Capacity <= 0 {
		c.History.Capacity = 50
	}
	if c.Text.CacheSize <= 0 {
		c.Text.CacheSize = 1024
	}
	if c.Output.PNG == "" {
		c.Output.PNG = "canvas.png"
	}
	if c.Output.YAML == "" {
		c.Output.YAML = "canvas.yaml"
	}
}

// LoadConfigFile reads a YAML config file. Missing fields keep their zero
// value until defaults is applied.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
