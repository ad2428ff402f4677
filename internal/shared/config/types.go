package config

import (
	"fmt"
	"time"
)

type APIConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	RequestTimeout       int    `mapstructure:"request_timeout"`
	VerifyTimeout        int    `mapstructure:"verify_timeout"`
	IdentityCacheSeconds int    `mapstructure:"identity_cache_seconds"`
}

func (a *APIConfig) GetRequestTimeout() time.Duration {
	return time.Duration(a.RequestTimeout) * time.Second
}

func (a *APIConfig) GetVerifyTimeout() time.Duration {
	return time.Duration(a.VerifyTimeout) * time.Second
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// StorageConfig selects the durable credential backend. The ephemeral
// backend is always the runtime-directory token file.
type StorageConfig struct {
	DurableBackend string      `mapstructure:"durable_backend"`
	SQLitePath     string      `mapstructure:"sqlite_path"`
	Redis          RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
	TTLDays  int    `mapstructure:"ttl_days"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type PortalConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

func (p *PortalConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}
