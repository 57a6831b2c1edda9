// Package config loads and validates the palctl configuration.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (PALCTL_*)
//  2. Configuration file (YAML)
//  3. Default values
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the static configuration for palctl. Everything dynamic
// (sessions, tokens, observed links) lives in memory only.
type Config struct {
	// Auth identifies the application towards Microsoft Entra ID.
	Auth AuthConfig `mapstructure:"auth" yaml:"auth"`

	// API configures the Azure Management API endpoint.
	API APIConfig `mapstructure:"api" yaml:"api"`

	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// AuthConfig holds the public-client application settings.
type AuthConfig struct {
	// ClientID is the application (client) ID of the app registration.
	ClientID string `mapstructure:"client_id" validate:"required,uuid" yaml:"client_id"`

	// Authority is the sign-in authority URL.
	Authority string `mapstructure:"authority" validate:"required,url" yaml:"authority"`

	// RedirectURI receives the browser callback during interactive
	// sign-in. Must match a redirect registered on the application.
	RedirectURI string `mapstructure:"redirect_uri" validate:"required,url" yaml:"redirect_uri"`
}

// APIConfig holds the management API settings.
type APIConfig struct {
	// Endpoint is the management API root.
	Endpoint string `mapstructure:"endpoint" validate:"required,url" yaml:"endpoint"`

	// Scope is the OAuth scope requested for management API tokens.
	Scope string `mapstructure:"scope" validate:"required" yaml:"scope"`

	// CheckTimeout bounds the per-tenant link check during discovery.
	CheckTimeout time.Duration `mapstructure:"check_timeout" validate:"gt=0" yaml:"check_timeout"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// Scopes returns the scope set for management API token requests.
func (c *Config) Scopes() []string {
	return []string{c.API.Scope}
}

// Load loads configuration from file, environment, and defaults. An
// empty configPath uses the default location; a missing file is fine
// and yields the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		// A missing file at the default location just means defaults.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg, viper.DecodeHook(decodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration against the struct validation rules.
func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}

// Save writes the configuration to the given path in YAML.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "palctl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "palctl")
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("PALCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
