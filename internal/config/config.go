package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds client settings. Values come from an optional YAML file with
// environment overrides on top; the WebSocket endpoint is the one value with
// no default, since the client is useless without a server.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Timer  TimerConfig  `yaml:"timer"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	WSURL  string `yaml:"ws_url"`
	APIURL string `yaml:"api_url"`
	Token  string `yaml:"token"`
}

type TimerConfig struct {
	DefaultBreakSeconds int `yaml:"default_break_seconds"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Load reads config from a YAML file (path may be empty), then applies
// environment variable overrides:
//
//	IRONLOG_WS_URL, IRONLOG_API_URL, IRONLOG_TOKEN,
//	IRONLOG_BREAK_SECONDS, IRONLOG_LOG_FILE, IRONLOG_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := &Config{
		Timer: TimerConfig{DefaultBreakSeconds: 120},
		Log:   LogConfig{Level: "info"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IRONLOG_WS_URL"); v != "" {
		cfg.Server.WSURL = v
	}
	if v := os.Getenv("IRONLOG_API_URL"); v != "" {
		cfg.Server.APIURL = v
	}
	if v := os.Getenv("IRONLOG_TOKEN"); v != "" {
		cfg.Server.Token = v
	}
	if v := os.Getenv("IRONLOG_BREAK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Timer.DefaultBreakSeconds = n
		}
	}
	if v := os.Getenv("IRONLOG_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("IRONLOG_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) validate() error {
	if c.Server.WSURL == "" {
		return fmt.Errorf("ws_url is required (set IRONLOG_WS_URL)")
	}
	u, err := url.Parse(c.Server.WSURL)
	if err != nil {
		return fmt.Errorf("ws_url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("ws_url: scheme %q, want ws or wss", u.Scheme)
	}
	if c.Server.APIURL == "" {
		c.Server.APIURL = DeriveAPIBase(c.Server.WSURL)
	}
	if c.Timer.DefaultBreakSeconds <= 0 {
		return fmt.Errorf("default_break_seconds must be positive")
	}
	return nil
}

// DeriveAPIBase converts ws://host:port/ws into http://host:port.
func DeriveAPIBase(wsURL string) string {
	u, err := url.Parse(wsURL)
	if err != nil {
		return "http://127.0.0.1:8080"
	}
	scheme := "http"
	if strings.HasPrefix(u.Scheme, "wss") {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, u.Host)
}
