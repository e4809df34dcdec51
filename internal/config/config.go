// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads server configuration from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the server configuration.
type Config struct {
	// Token authenticates requests to GitHub. Resolved from the config
	// file, GITHUBMCP_TOKEN, or the conventional GITHUB_TOKEN.
	Token string `mapstructure:"token"`

	// APIBaseURL is the GitHub API endpoint. Override for GitHub Enterprise.
	APIBaseURL string `mapstructure:"api_base_url"`

	// UserAgent is sent on every API request.
	UserAgent string `mapstructure:"user_agent"`

	// Timeout bounds each API request.
	Timeout time.Duration `mapstructure:"timeout"`

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `mapstructure:"log_format"`
}

// Load reads githubmcp.yaml (from the working directory or
// ~/.config/githubmcp) and applies GITHUBMCP_* environment overrides.
// A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("githubmcp")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/githubmcp")

	v.SetEnvPrefix("GITHUBMCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about. token has
	// no default, so bind it explicitly or GITHUBMCP_TOKEN is never read.
	if err := v.BindEnv("token"); err != nil {
		return nil, err
	}

	v.SetDefault("api_base_url", "https://api.github.com")
	v.SetDefault("user_agent", "githubmcp")
	v.SetDefault("timeout", "30s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Token == "" {
		cfg.Token = os.Getenv("GITHUB_TOKEN")
	}
	return &cfg, nil
}
