// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the application configuration. Values are layered as
// defaults < config file < AUMIAO_* environment < command-line flags using
// Viper, and can be written back to YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the application configuration. It is immutable once the App has
// been constructed.
type Config struct {
	Debug    bool      `mapstructure:"debug" yaml:"debug"`
	Verbose  bool      `mapstructure:"verbose" yaml:"verbose"`
	Language string    `mapstructure:"language" yaml:"language"`
	API      APIConfig `mapstructure:"api" yaml:"api"`
}

// APIConfig configures the codemao.cn transport.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Language: "zh",
		API: APIConfig{
			BaseURL:   "https://api.codemao.cn",
			Timeout:   30 * time.Second,
			UserAgent: "Mozilla/5.0 (compatible; aumiao-cli)",
		},
	}
}

// Defaults returns the built-in configuration as viper keys.
func Defaults() map[string]any {
	d := Default()
	return map[string]any{
		"debug":          d.Debug,
		"verbose":        d.Verbose,
		"language":       d.Language,
		"api.base_url":   d.API.BaseURL,
		"api.timeout":    d.API.Timeout,
		"api.user_agent": d.API.UserAgent,
	}
}

// FlagKeys maps command-line flag names to the config key they override
// when the two differ.
var FlagKeys = map[string]string{
	"lang":    "language",
	"api-url": "api.base_url",
}

// GetConfigPath returns the full path for the user configuration file.
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(configDir, "aumiao", "aumiao.yaml"), nil
}

// LoadConfig builds a T from defaults, the first aumiao.yaml found (or the
// explicit path), the environment and the flags of cmd.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFilePath *string) (T, error) {
	var c T
	v := viper.New()

	// 1. Set defaults
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 2. Config file: explicit path wins over the search paths.
	v.SetConfigName("aumiao")
	v.SetConfigType("yaml")
	if configFilePath != nil {
		v.SetConfigFile(*configFilePath)
	} else {
		if userConfigPath, err := GetConfigPath(); err == nil {
			v.AddConfigPath(filepath.Dir(userConfigPath))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// It's okay if the file is not found, but other errors are fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	// 3. Environment
	v.SetEnvPrefix("aumiao")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Flags. Only flags the user actually set override lower layers.
	if cmd != nil {
		if err := bindFlags(v, cmd); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	flags := cmd.Flags()
	for name, key := range FlagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	for _, name := range []string{"debug", "verbose"} {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(name, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	return nil
}

// WriteConfigFile marshals c as YAML to path, creating parent directories.
// An empty path writes to the user configuration path.
func WriteConfigFile[T any](c *T, path string) (string, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return "", err
		}
		path = p
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}
	return path, nil
}

// Marshal renders c as YAML.
func Marshal(c any) ([]byte, error) {
	return yaml.Marshal(c)
}
