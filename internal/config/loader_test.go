package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ZENCRAWL_API_URL", "")
	t.Setenv("NEXT_PUBLIC_API_URL", "")
	return home
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	configDir := filepath.Join(home, ".config", "zencrawl")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	got := DefaultConfig()

	if got.APIURL != "http://localhost:3000" {
		t.Fatalf("APIURL = %q, want http://localhost:3000", got.APIURL)
	}
	if got.Theme != "catppuccin-mocha" {
		t.Fatalf("Theme = %q, want catppuccin-mocha", got.Theme)
	}
	if got.RequestTimeout != 0 {
		t.Fatalf("RequestTimeout = %s, want 0", got.RequestTimeout)
	}
}

func TestLoadReturnsDefaultsWhenConfigMissing(t *testing.T) {
	isolate(t)

	got := Load()
	want := DefaultConfig()

	if got != want {
		t.Fatalf("Load() = %#v, want defaults %#v", got, want)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, "api_url: https://api.example.com\ntheme: nord\nrequest_timeout: 90s\nproxy: socks5://127.0.0.1:1080\nno_proxy: localhost\nhistory_path: ~/h.db\nlog_level: debug\n")

	got := Load()

	if got.APIURL != "https://api.example.com" {
		t.Fatalf("APIURL = %q", got.APIURL)
	}
	if got.Theme != "nord" {
		t.Fatalf("Theme = %q, want nord", got.Theme)
	}
	if got.RequestTimeout != 90*time.Second {
		t.Fatalf("RequestTimeout = %s, want 90s", got.RequestTimeout)
	}
	if got.Proxy != "socks5://127.0.0.1:1080" || got.NoProxy != "localhost" {
		t.Fatalf("Proxy = %q, NoProxy = %q", got.Proxy, got.NoProxy)
	}
	if got.HistoryFile() != filepath.Join(home, "h.db") {
		t.Fatalf("HistoryFile() = %q", got.HistoryFile())
	}
	if got.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", got.LogLevel)
	}
}

func TestLoadMergesPartialConfigWithDefaults(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, "theme: gruvbox\n")

	got := Load()
	want := DefaultConfig()
	want.Theme = "gruvbox"

	if got != want {
		t.Fatalf("Load() = %#v, want %#v", got, want)
	}
}

func TestLoadInvalidYAMLKeepsDefaults(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, "theme: [\n")

	got := Load()
	want := DefaultConfig()

	if got != want {
		t.Fatalf("Load() = %#v, want defaults %#v", got, want)
	}
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, "api_url: https://file.example.com\n")

	t.Setenv("NEXT_PUBLIC_API_URL", "https://legacy.example.com")
	if got := Load().APIURL; got != "https://legacy.example.com" {
		t.Fatalf("APIURL = %q, want legacy env value", got)
	}

	t.Setenv("ZENCRAWL_API_URL", "https://env.example.com")
	if got := Load().APIURL; got != "https://env.example.com" {
		t.Fatalf("APIURL = %q, want ZENCRAWL_API_URL value", got)
	}
}

func TestDefaultPaths(t *testing.T) {
	home := isolate(t)
	cfg := DefaultConfig()

	if got := cfg.HistoryFile(); got != filepath.Join(home, ".local", "share", "zencrawl", "history.db") {
		t.Errorf("HistoryFile() = %q", got)
	}
	if got := cfg.LogPath(); got != filepath.Join(home, ".local", "state", "zencrawl", "zencrawl.log") {
		t.Errorf("LogPath() = %q", got)
	}
}
