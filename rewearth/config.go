package rewearth

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultPlatformFee is charged to both parties when a swap completes.
	DefaultPlatformFee = 20
	// DefaultStartingCredits is granted to every newly registered account.
	DefaultStartingCredits = 100
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	DB     DBConfig     `toml:"db"`
	Mongo  MongoConfig  `toml:"mongo"`
	Swap   SwapConfig   `toml:"swap"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	AddSource bool       `toml:"add_source"`
}

type ServerConfig struct {
	Port          int `toml:"port"`
	BodyLimit     int `toml:"body_limit"`
	RateLimit     int `toml:"rate_limit"`
	RateWindowSec int `toml:"rate_window_sec"`
}

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type SwapConfig struct {
	PlatformFee     int64 `toml:"platform_fee"`
	StartingCredits int64 `toml:"starting_credits"`
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.BodyLimit == 0 {
		c.Server.BodyLimit = 1 * 1024 * 1024
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 60
	}
	if c.Server.RateWindowSec == 0 {
		c.Server.RateWindowSec = 60
	}
	if c.Swap.PlatformFee == 0 {
		c.Swap.PlatformFee = DefaultPlatformFee
	}
	if c.Swap.StartingCredits == 0 {
		c.Swap.StartingCredits = DefaultStartingCredits
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "rewearth"
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = "eco_data"
	}
}
