// Package config loads the counter server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalid returned when an environment variable cannot be parsed.
var ErrInvalid = errors.New("invalid config value")

// Config of the counter server.
type Config struct {
	// Addr to listen on.
	Addr string
	// Title of the page.
	Title string
	// Start is the count a new socket begins with.
	Start int
	// Shared makes every socket, on every node, display the same count.
	Shared bool
	// PubSubURL the gocloud pubsub topic used to share counts between nodes.
	PubSubURL string
	// BroadcastInterval and BroadcastBurst limit how often counts are
	// broadcast.
	BroadcastInterval time.Duration
	BroadcastBurst    int
	// LogLevel for the default slog logger.
	LogLevel slog.Level
}

// Default returns the config used when nothing is set.
func Default() Config {
	return Config{
		Addr:              ":8080",
		Title:             "Counter",
		PubSubURL:         "mem://counter",
		BroadcastInterval: 100 * time.Millisecond,
		BroadcastBurst:    8,
		LogLevel:          slog.LevelInfo,
	}
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("could not read .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a config using lookup to read variables.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()

	if v, ok := lookup("COUNTER_ADDR"); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup("COUNTER_TITLE"); ok && v != "" {
		c.Title = v
	}
	if v, ok := lookup("COUNTER_PUBSUB_URL"); ok && v != "" {
		c.PubSubURL = v
	}
	if v, ok := lookup("COUNTER_START"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, invalid("COUNTER_START", err)
		}
		c.Start = n
	}
	if v, ok := lookup("COUNTER_SHARED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, invalid("COUNTER_SHARED", err)
		}
		c.Shared = b
	}
	if v, ok := lookup("COUNTER_BROADCAST_INTERVAL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, invalid("COUNTER_BROADCAST_INTERVAL", err)
		}
		c.BroadcastInterval = d
	}
	if v, ok := lookup("COUNTER_BROADCAST_BURST"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, invalid("COUNTER_BROADCAST_BURST", err)
		}
		if n < 1 {
			return Config{}, invalid("COUNTER_BROADCAST_BURST", fmt.Errorf("burst must be at least 1, got %d", n))
		}
		c.BroadcastBurst = n
	}
	if v, ok := lookup("COUNTER_LOG_LEVEL"); ok && v != "" {
		if err := c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, invalid("COUNTER_LOG_LEVEL", err)
		}
	}

	return c, nil
}

func invalid(key string, err error) error {
	return fmt.Errorf("%w %s: %w", ErrInvalid, key, err)
}
