// Package config loads the application configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address          string `mapstructure:"address"`
	Mode             string `mapstructure:"mode"`
	CORSAllowOrigins string `mapstructure:"cors_allow_origins"`
	EnablePprof      bool   `mapstructure:"enable_pprof"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SessionSecret       string `mapstructure:"session_secret"`
	OwnerBootstrapToken string `mapstructure:"owner_bootstrap_token"`
}

type LogConfig struct {
	Format string `mapstructure:"format"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

// Load reads the configuration from config.yaml in the working directory,
// if present, with environment overrides (e.g. FINANZAS_SERVER_ADDRESS).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FINANZAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so that AutomaticEnv picks it up
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.cors_allow_origins", "")
	v.SetDefault("server.enable_pprof", false)
	v.SetDefault("database.path", "data/finanzas.db")
	v.SetDefault("auth.session_secret", "")
	v.SetDefault("auth.owner_bootstrap_token", "")
	v.SetDefault("log.format", "")

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional, env vars and defaults suffice
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &c, nil
}
