// Package config loads service configuration from a TOML file.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration.
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	CatalogService CatalogServiceConfig `toml:"catalog_service"`
	Auth           AuthConfig           `toml:"auth"`
	Notifications  NotificationsConfig  `toml:"notifications"`
}

// ServerConfig holds HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig holds logger settings.
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig holds prometheus settings.
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CatalogServiceConfig holds the external catalog service settings.
// Timeout is in seconds.
type CatalogServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// AuthConfig holds the admin gate token. This is a plain flag check for the
// admin views, not a credential system.
type AuthConfig struct {
	AdminToken string `toml:"admin_token"`
}

// NotificationsConfig holds confirmation email settings.
type NotificationsConfig struct {
	Enabled   bool   `toml:"enabled"`
	APIKey    string `toml:"api_key"`
	FromEmail string `toml:"from_email"`
	FromName  string `toml:"from_name"`
}

// Load reads and validates configuration from the given TOML file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "booking-service"
	}
	if cfg.Database.Host == "" {
		return nil, fmt.Errorf("config: database.host is required")
	}
	if cfg.CatalogService.URL == "" {
		return nil, fmt.Errorf("config: catalog_service.url is required")
	}
	if cfg.CatalogService.Timeout == 0 {
		cfg.CatalogService.Timeout = 5
	}

	return &cfg, nil
}
