package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	Store    string         `mapstructure:"store"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Game     GameConfig     `mapstructure:"game"`
}

type SnapshotConfig struct {
	// Slot is the key of the single snapshot kept per user.
	Slot string `mapstructure:"slot"`
	// Collection is the Nakama storage collection holding the slot.
	Collection string        `mapstructure:"collection"`
	TTL        time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type GameConfig struct {
	DefaultPlayerCount int `mapstructure:"default_player_count"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store", StoreMemory)
	v.SetDefault("snapshot.slot", "bisca-game-storage")
	v.SetDefault("snapshot.collection", "bisca")
	v.SetDefault("snapshot.ttl", time.Duration(0))
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("game.default_player_count", 2)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("BISCA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the configuration with only defaults and environment overrides applied.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		// Defaults always decode; only a malformed environment value can get here.
		return &Config{
			Store:    StoreMemory,
			Snapshot: SnapshotConfig{Slot: "bisca-game-storage", Collection: "bisca"},
			Redis:    RedisConfig{Addr: "localhost:6379", PoolSize: 10},
			Log:      LogConfig{Level: "info"},
			Game:     GameConfig{DefaultPlayerCount: 2},
		}
	}
	return cfg
}

// Load reads the config file at path (any format viper recognizes by extension) over the
// defaults. An empty path skips the file. Flags, when given, take precedence over the file.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that have a closed set of options.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.Snapshot.Slot == "" {
		return fmt.Errorf("snapshot.slot must not be empty")
	}
	if n := c.Game.DefaultPlayerCount; n != 2 && n != 4 {
		return fmt.Errorf("game.default_player_count must be 2 or 4, got %d", n)
	}
	return nil
}
