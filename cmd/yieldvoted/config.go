package main

import (
	"strings"
	"time"

	"github.com/iov-one/yieldvote/errors"
	"github.com/spf13/viper"
)

const envPrefix = "YIELDVOTE"

// envReplacer maps a nested key like `keeper.interval` to the environment
// variable `YIELDVOTE_KEEPER_INTERVAL`.
var envReplacer = strings.NewReplacer(".", "_", "-", "_")

// Config is the daemon configuration.
type Config struct {
	LogLevel       string        `mapstructure:"log_level"`
	Genesis        string        `mapstructure:"genesis"`
	BlockInterval  time.Duration `mapstructure:"block_interval"`
	KeeperInterval time.Duration `mapstructure:"keeper_interval"`
	YieldPerBlock  uint64        `mapstructure:"yield_per_block"`
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "error", "none":
	default:
		return errors.Wrapf(errors.ErrInput, "log level %q", c.LogLevel)
	}
	if c.Genesis == "" {
		return errors.Wrap(errors.ErrInput, "genesis file required")
	}
	if c.BlockInterval <= 0 {
		return errors.Wrapf(errors.ErrInput, "block interval %s", c.BlockInterval)
	}
	if c.KeeperInterval <= 0 {
		return errors.Wrapf(errors.ErrInput, "keeper interval %s", c.KeeperInterval)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("genesis", "genesis.json")
	v.SetDefault("block_interval", time.Second)
	v.SetDefault("keeper_interval", 5*time.Second)
	v.SetDefault("yield_per_block", 10)
}

// loadConfig reads the configuration from the defaults, an optional file
// and the environment, later sources overriding earlier ones.
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "config file %s: %s", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode config: %s", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
