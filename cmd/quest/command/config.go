package command

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pixil98/go-errors"
)

// EnvPrefix namespaces every environment override, e.g. QUEST_TICK_INTERVAL.
const EnvPrefix = "QUEST_"

type Config struct {
	TickInterval   string           `json:"tick_interval" env:"TICK_INTERVAL"`
	LogLevel       string           `json:"log_level" env:"LOG_LEVEL"`
	LogFormat      string           `json:"log_format" env:"LOG_FORMAT"`
	MaxConnections int              `json:"max_connections" env:"MAX_CONNECTIONS"`
	Listeners      []ListenerConfig `json:"listeners"`
	Storage        StorageConfig    `json:"storage" envPrefix:"STORAGE_"`
	Nats           NatsConfig       `json:"nats" envPrefix:"NATS_"`
}

// Validate applies environment overrides on top of the loaded file and
// then checks the result.
func (c *Config) Validate() error {
	if err := c.applyEnv(); err != nil {
		return err
	}

	el := errors.NewErrorList()

	if _, err := c.tickInterval(); err != nil {
		el.Add(err)
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		el.Add(err)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		el.Add(fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if c.MaxConnections < 0 {
		el.Add(fmt.Errorf("max_connections must not be negative"))
	}

	el.Add(validateListeners(c.Listeners))

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}

func (c *Config) applyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) tickInterval() (time.Duration, error) {
	if c.TickInterval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0, fmt.Errorf("parsing tick_interval: %w", err)
	}
	if d < time.Second {
		return 0, fmt.Errorf("tick_interval must be at least 1 second")
	}
	return d, nil
}
