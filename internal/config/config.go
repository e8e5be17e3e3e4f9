package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/dotcommander/lifeindex/internal/survey"
)

// Config represents the lifeindex configuration
type Config struct {
	Profile  string       `mapstructure:"profile"`
	Store    string       `mapstructure:"store"`
	Format   string       `mapstructure:"format"`
	Output   string       `mapstructure:"output"`
	Quiet    bool         `mapstructure:"quiet"`
	Verbose  bool         `mapstructure:"verbose"`
	Baseline string       `mapstructure:"baseline"`
	Schemas  SchemaConfig `mapstructure:"schemas"`
}

// SchemaConfig contains snapshot schema configuration
type SchemaConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ConfigPaths are the rc files looked up in the working directory.
var ConfigPaths = []string{".lifeindexrc.json", ".lifeindexrc.yaml", ".lifeindexrc.yml"}

// DefaultStorePath returns the snapshot location used when none is configured.
func DefaultStorePath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".lifeindex", "answers.json")
}

// LoadConfig loads configuration from defaults, rc files, environment and
// bound flags, in increasing precedence.
func LoadConfig() (*Config, error) {
	viper.SetDefault("profile", survey.DefaultProfile)
	viper.SetDefault("store", DefaultStorePath())
	viper.SetDefault("format", "console")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("baseline", "")
	viper.SetDefault("schemas.enabled", true)

	for _, path := range ConfigPaths {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	viper.SetEnvPrefix("LIFEINDEX")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if _, err := survey.Lookup(config.Profile); err != nil {
		return err
	}

	if config.Format != "console" && config.Format != "json" && config.Format != "markdown" {
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'markdown'", config.Format)
	}

	if config.Store == "" {
		return fmt.Errorf("store path must not be empty")
	}

	return nil
}
