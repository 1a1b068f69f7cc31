package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/billmal071/booksearch/internal/logger"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	GoogleBooks GoogleBooksConfig `mapstructure:"google_books"`
	Network     NetworkConfig     `mapstructure:"network"`
	Search      SearchConfig      `mapstructure:"search"`
	Log         LogConfig         `mapstructure:"log"`
}

// GoogleBooksConfig holds the search endpoint settings
type GoogleBooksConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// NetworkConfig holds network settings
type NetworkConfig struct {
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// SearchConfig holds search behaviour
type SearchConfig struct {
	MaxResults  int  `mapstructure:"max_results"`
	JoinLines   bool `mapstructure:"join_lines"`  // drop line breaks from the response body
	Interactive bool `mapstructure:"interactive"` // use the selector when stdout is a terminal
}

// LogConfig holds diagnostic logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text, json
}

var cfg *Config

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "booksearch")
}

// GetDBPath returns the database file path
func GetDBPath() string {
	return filepath.Join(GetConfigDir(), "booksearch.db")
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Init initializes the configuration
func Init(cfgFile string) error {
	viper.SetDefault("google_books.base_url", "https://www.googleapis.com/books/v1/volumes")
	viper.SetDefault("network.connect_timeout", 15*time.Second)
	viper.SetDefault("network.read_timeout", 10*time.Second)
	viper.SetDefault("network.user_agent", "")
	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.join_lines", true)
	viper.SetDefault("search.interactive", true)
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "text")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(GetConfigDir())
	}

	// Environment variable overrides
	viper.SetEnvPrefix("BOOKSEARCH")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()

	cfg = nil
	if _, err := load(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func load() (*Config, error) {
	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return c, err
	}
	cfg = c
	return c, nil
}

// Get returns the current configuration. A value that cannot be decoded is
// logged and left at its zero value.
func Get() *Config {
	if cfg != nil {
		return cfg
	}
	c, err := load()
	if err != nil {
		logger.For("config").WithError(err).Error("problem decoding the configuration")
	}
	return c
}

// Set sets a configuration value
func Set(key, value string) error {
	viper.Set(key, value)

	// Ensure config directory exists
	configDir := GetConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	// Reset cached config
	cfg = nil

	return viper.WriteConfigAs(GetConfigPath())
}

// GetValue retrieves a configuration value
func GetValue(key string) interface{} {
	return viper.Get(key)
}
