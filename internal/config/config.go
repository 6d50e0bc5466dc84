// Package config loads service configuration from an optional YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Admin  AdminConfig  `yaml:"admin"`
	Slow   SlowConfig   `yaml:"slow"`
	Export ExportConfig `yaml:"export"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type AdminConfig struct {
	// APIKey is the shared secret expected in the X-API-KEY header on
	// admin routes. A single static value, deliberately: the service is a
	// target for exercising auth-failure scenarios, not a real auth system.
	APIKey string `yaml:"api_key"`
}

type SlowConfig struct {
	MinDelayMS      int     `yaml:"min_delay_ms"`
	MaxDelayMS      int     `yaml:"max_delay_ms"`
	FailThresholdMS int     `yaml:"fail_threshold_ms"`
	FailProbability float64 `yaml:"fail_probability"`
}

func (c SlowConfig) MinDelay() time.Duration { return time.Duration(c.MinDelayMS) * time.Millisecond }
func (c SlowConfig) MaxDelay() time.Duration { return time.Duration(c.MaxDelayMS) * time.Millisecond }

func (c SlowConfig) FailThreshold() time.Duration {
	return time.Duration(c.FailThresholdMS) * time.Millisecond
}

type ExportConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Admin:  AdminConfig{APIKey: "secret-admin-key"},
		Slow: SlowConfig{
			MinDelayMS:      1500,
			MaxDelayMS:      3500,
			FailThresholdMS: 3000,
			FailProbability: 0.2,
		},
		Export: ExportConfig{CacheTTL: 30 * time.Second},
	}
}

// Load reads path into a Config on top of the defaults. An empty path or a
// missing file yields the defaults. TASKBENCH_ADDR and TASKBENCH_API_KEY
// override the file in either case.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if addr := os.Getenv("TASKBENCH_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if key := os.Getenv("TASKBENCH_API_KEY"); key != "" {
		cfg.Admin.APIKey = key
	}
	return cfg, nil
}
