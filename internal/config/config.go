package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/solodesk/solodesk/internal/logging"
)

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	GracefulTimeout time.Duration `yaml:"graceful_timeout"`
}

func (s ServerConfig) Address() string { return s.Host + ":" + strconv.Itoa(s.Port) }

type DatabaseConfig struct {
	Driver         string `yaml:"driver"` // mysql | sqlite
	DSN            string `yaml:"dsn"`
	MaxOpenConns   int    `yaml:"max_open_conns"`
	MaxIdleConns   int    `yaml:"max_idle_conns"`
	ConnMaxLifeSec int    `yaml:"conn_max_lifetime"`
}

type RedisConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Addresses []string `yaml:"addresses"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	DB        int      `yaml:"db"`
}

type AuthConfig struct {
	CookieName string        `yaml:"cookie_name"`
	LoginPath  string        `yaml:"login_path"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  logging.Config `yaml:"logging"`
}

// Load reads the YAML config at path. A missing file falls back to defaults
// so a fresh checkout runs without any setup.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return defaultConfig(), nil
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{
		Server:   ServerConfig{Host: "0.0.0.0", Port: 8080, GracefulTimeout: 10 * time.Second},
		Database: DatabaseConfig{Driver: "sqlite", DSN: "solodesk.db", MaxOpenConns: 25, MaxIdleConns: 5, ConnMaxLifeSec: 300},
		Redis:    RedisConfig{Enabled: false, Addresses: []string{"127.0.0.1:6379"}},
		Auth:     AuthConfig{CookieName: "sd_session", LoginPath: "/login", SessionTTL: 24 * time.Hour},
		Metrics:  MetricsConfig{Enabled: true},
	}
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	cfg.Logging.Output = "stdout"
	return cfg
}
