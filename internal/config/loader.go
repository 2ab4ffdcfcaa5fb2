package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load assembles configuration in priority order:
// 1. Built-in defaults
// 2. Configuration file (stellareffects.toml), when given or discovered
// 3. Environment variables (STELLAREFFECTS_ prefix)
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if err := readConfigFile(v, configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	v.SetEnvPrefix("STELLAREFFECTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// readConfigFile loads the config file into v. An explicit path must
// exist; the default discovery path is optional.
func readConfigFile(v *viper.Viper, configPath string) error {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return fmt.Errorf("config file does not exist: %s", configPath)
		}
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		return nil
	}

	v.SetConfigName("stellareffects")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}
