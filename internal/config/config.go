package config

import "time"

// Config holds the application configuration.
type Config struct {
	APIURL         string        `yaml:"api_url"`
	Theme          string        `yaml:"theme"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Proxy          string        `yaml:"proxy"`
	NoProxy        string        `yaml:"no_proxy"`
	HistoryPath    string        `yaml:"history_path"`
	LogFile        string        `yaml:"log_file"`
	LogLevel       string        `yaml:"log_level"`
}

// DefaultConfig returns the default configuration. Empty paths resolve
// to locations under the user's home directory.
func DefaultConfig() Config {
	return Config{
		APIURL:         "http://localhost:3000",
		Theme:          "catppuccin-mocha",
		RequestTimeout: 0,
		LogLevel:       "info",
	}
}
