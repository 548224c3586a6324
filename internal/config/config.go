package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds prowlerstat configuration loaded from .prowlerstat.yaml.
type Config struct {
	Format      string  `yaml:"format"`
	Pattern     string  `yaml:"pattern"`
	TopServices int     `yaml:"top_services"`
	SampleSize  int     `yaml:"sample_size"`
	DetailWidth int     `yaml:"detail_width"`
	Profile     string  `yaml:"profile"`
	Region      string  `yaml:"region"`
	Timeout     string  `yaml:"timeout"`
	Publish     Publish `yaml:"publish"`
}

// Publish controls where summaries are sent besides standard output.
type Publish struct {
	Metrics   bool   `yaml:"metrics"`
	Namespace string `yaml:"namespace"`
	SNSTopic  string `yaml:"sns_topic"`
}

// Enabled reports whether any AWS destination is configured.
func (p Publish) Enabled() bool {
	return p.Metrics || p.SNSTopic != ""
}

// TimeoutDuration parses the timeout string as a duration.
func (c Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Load searches for .prowlerstat.yaml or .prowlerstat.yml in the given directory
// and returns the parsed config. Returns an empty Config if no file is found.
func Load(dir string) (Config, error) {
	candidates := []string{
		filepath.Join(dir, ".prowlerstat.yaml"),
		filepath.Join(dir, ".prowlerstat.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Config{}, nil
}
