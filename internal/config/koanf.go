// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names a config file explicitly. It wins over
// DefaultConfigPaths when the file exists.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are tried in order; the first existing file is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/covidash/config.yaml",
	"/etc/covidash/config.yml",
}

// DefaultAssetsHost serves echarts.min.js and maps/world.js.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        8050,
			Timeout:     30 * time.Second,
			Debug:       true,
			Environment: "development",
		},
		Dataset: DatasetConfig{Path: "data/data.csv", Format: "auto"},
		Dashboard: DashboardConfig{
			Title:          "COVID-19 Dashboard",
			DefaultCountry: "United States",
			CacheSize:      256,
			AssetsHost:     DefaultAssetsHost,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// layer is one configuration source. Later layers override earlier ones.
type layer struct {
	name string
	load func(k *koanf.Koanf) error
}

func layers(configPath string) []layer {
	ls := []layer{{
		name: "defaults",
		load: func(k *koanf.Koanf) error {
			return k.Load(structs.Provider(defaultConfig(), "koanf"), nil)
		},
	}}
	if configPath != "" {
		ls = append(ls, layer{
			name: "file " + configPath,
			load: func(k *koanf.Koanf) error {
				return k.Load(file.Provider(configPath), yaml.Parser())
			},
		})
	}
	return append(ls, layer{
		name: "environment",
		load: func(k *koanf.Koanf) error {
			return k.Load(env.ProviderWithValue("", ".", envValue), nil)
		},
	})
}

// LoadWithKoanf merges built-in defaults, the config file found by
// FindConfigFile (if any), and the mapped environment variables, then
// validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")
	for _, l := range layers(FindConfigFile()) {
		if err := l.load(k); err != nil {
			return nil, fmt.Errorf("load %s: %w", l.name, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// FindConfigFile returns the config file to read, or "" when there is none.
func FindConfigFile() string {
	candidates := DefaultConfigPaths
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		candidates = []string{p}
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envMappings maps lowercased environment variable names to config keys.
// Anything else in the environment is ignored.
var envMappings = map[string]string{
	"http_host":    "server.host",
	"http_port":    "server.port",
	"http_timeout": "server.timeout",
	"debug":        "server.debug",
	"environment":  "server.environment",

	"dataset_path":   "dataset.path",
	"dataset_format": "dataset.format",

	"dashboard_title":   "dashboard.title",
	"default_country":   "dashboard.default_country",
	"figure_cache_size": "dashboard.cache_size",
	"assets_host":       "dashboard.assets_host",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"metrics_enabled": "metrics.enabled",
	"metrics_path":    "metrics.path",
}

// listKeys hold comma-separated lists when set from the environment.
var listKeys = map[string]bool{
	"security.cors_origins": true,
}

// envTransformFunc maps HTTP_PORT to server.port and so on; unmapped
// names give "".
func envTransformFunc(name string) string {
	return envMappings[strings.ToLower(name)]
}

// envValue is the env provider callback. An empty key drops the variable.
func envValue(name, value string) (string, interface{}) {
	key := envTransformFunc(name)
	if key == "" || !listKeys[key] {
		return key, value
	}
	return key, splitList(value)
}

// splitList splits on commas, trimming blanks and dropping empty items.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LoadLogLevel reads logging.level from path, with LOG_LEVEL taking
// precedence as it does at startup. The debug-mode watcher calls it.
func LoadLogLevel(path string) (string, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}

	level := k.String("logging.level")
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level = v
	}
	switch {
	case level == "":
		return "", fmt.Errorf("logging.level not set in %s", path)
	case !validLogLevels[level]:
		return "", fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return level, nil
}

// WatchConfigFile calls onChange on the watcher goroutine each time path
// changes. Watch errors are dropped; the next change retries.
func WatchConfigFile(path string, onChange func()) error {
	return file.Provider(path).Watch(func(_ interface{}, err error) {
		if err == nil {
			onChange()
		}
	})
}
