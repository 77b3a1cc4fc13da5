package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all billing-logger configuration. The zero config file is
// valid: defaults reproduce the historical invocation (administrative local
// trust auth against the cinder database, 14-day window).
type Config struct {
	Database            DatabaseConfig `yaml:"database"`
	WindowDays          int            `yaml:"window_days"`
	QueryTimeoutSeconds int            `yaml:"query_timeout_seconds"`
}

// DatabaseConfig locates the Cinder MySQL database. DSN, when set, wins over
// the individual fields.
type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Socket   string `yaml:"socket"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// Default returns a Config matching the original cron deployment.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Socket: "/var/run/mysqld/mysqld.sock",
			User:   "root",
			Name:   "cinder",
		},
		WindowDays:          14,
		QueryTimeoutSeconds: 30,
	}
}

// Load reads a YAML config file over the defaults and expands environment
// variables in its contents.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// DSN returns the go-sql-driver DSN for the configured database. parseTime is
// always on so deleted_at scans into time.Time.
func (c *Config) DSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	cred := c.Database.User
	if c.Database.Password != "" {
		cred += ":" + c.Database.Password
	}
	return fmt.Sprintf("%s@unix(%s)/%s?parseTime=true", cred, c.Database.Socket, c.Database.Name)
}

// Window returns the trailing window within which deletions are reported.
func (c *Config) Window() time.Duration {
	return time.Duration(c.WindowDays) * 24 * time.Hour
}

// QueryTimeout returns the defensive per-run database timeout.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutSeconds) * time.Second
}
