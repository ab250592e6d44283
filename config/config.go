package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the engine-level knobs. Fields map 1:1 onto the TOML file
// passed to the server binary; zero values fall back to the defaults below.
type Config struct {
	DBName        string `toml:"db-name"`
	LogLevel      string `toml:"log-level"`
	LockTimeoutMs int64  `toml:"lock-timeout-ms"`
}

func NewDefaultConfig() *Config {
	return &Config{
		DBName:        "silberschatz",
		LogLevel:      "warn",
		LockTimeoutMs: 2000,
	}
}

func (c *Config) LockTimeout() time.Duration {
	return time.Duration(c.LockTimeoutMs) * time.Millisecond
}

// FromFile loads a config, overlaying the file's values on the defaults.
func FromFile(path string) (*Config, error) {
	c := NewDefaultConfig()
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	return c, nil
}
