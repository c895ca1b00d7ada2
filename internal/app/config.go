package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Application selects a single application from the configuration file.
	// Empty means run every entry of the "applications" list.
	Application string
	ConfigPath  string

	LogFormat string
	LogLevel  string
	Workers   int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
