package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that select the API base URL, in priority order.
var apiURLEnv = []string{"ZENCRAWL_API_URL", "NEXT_PUBLIC_API_URL"}

// Load loads configuration from ~/.config/zencrawl/config.yaml and
// applies environment overrides. A missing or invalid file yields the
// defaults.
func Load() Config {
	cfg := DefaultConfig()

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "zencrawl", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			fileCfg := cfg
			if err := yaml.Unmarshal(data, &fileCfg); err == nil {
				cfg = fileCfg
			}
		}
	}

	for _, key := range apiURLEnv {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			cfg.APIURL = v
			break
		}
	}
	return cfg
}

// HistoryFile returns the history database path.
func (c Config) HistoryFile() string {
	if c.HistoryPath != "" {
		return expandHome(c.HistoryPath)
	}
	return homePath(".local", "share", "zencrawl", "history.db")
}

// LogPath returns the log file path.
func (c Config) LogPath() string {
	if c.LogFile != "" {
		return expandHome(c.LogFile)
	}
	return homePath(".local", "state", "zencrawl", "zencrawl.log")
}

func homePath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(append([]string{home}, elem...)...)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		return homePath(strings.TrimPrefix(strings.TrimPrefix(p, "~"), "/"))
	}
	return p
}
