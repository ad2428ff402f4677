package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "transferdesk/internal/shared/config"
)

type Config struct {
	API     sharedConfig.APIConfig     `mapstructure:"api"`
	Logger  sharedConfig.LoggerConfig  `mapstructure:"logger"`
	Storage sharedConfig.StorageConfig `mapstructure:"storage"`
	Portal  sharedConfig.PortalConfig  `mapstructure:"portal"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
// configDir may be empty, in which case the default search paths are used.
func Load(configDir string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if configDir != "" {
		viper.AddConfigPath(configDir)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath(defaultConfigDir())

	viper.SetEnvPrefix("TRANSFERDESK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// API defaults
	viper.SetDefault("api.base_url", "http://localhost:8000/api")
	viper.SetDefault("api.request_timeout", 30)
	viper.SetDefault("api.verify_timeout", 10)
	viper.SetDefault("api.identity_cache_seconds", 30)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stderr")

	// Storage defaults
	viper.SetDefault("storage.durable_backend", "sqlite")
	viper.SetDefault("storage.sqlite_path", filepath.Join(defaultConfigDir(), "credentials.db"))
	viper.SetDefault("storage.redis.host", "localhost")
	viper.SetDefault("storage.redis.port", 6379)
	viper.SetDefault("storage.redis.password", "")
	viper.SetDefault("storage.redis.db", 0)
	viper.SetDefault("storage.redis.key", "transferdesk:session:token")
	viper.SetDefault("storage.redis.ttl_days", 30)

	// Portal defaults
	viper.SetDefault("portal.host", "127.0.0.1")
	viper.SetDefault("portal.port", 7420)
	viper.SetDefault("portal.mode", "release")
}

func defaultConfigDir() string {
	home, err := resolveUserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "transferdesk")
}
