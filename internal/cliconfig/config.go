package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Default values for optional settings.
const (
	DefaultDialTimeout   = 10 * time.Second
	DefaultReadChunkSize = 4096
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "console"
)

// Config holds CLI configuration for drivecli.
type Config struct {
	Host string
	Port int

	DialTimeout   time.Duration
	ReadChunkSize int

	LogLevel    string
	LogFormat   string
	WatchConfig bool
}

// DefaultConfig returns a Config with default values.
// Host and Port have no default and come from the positional arguments.
func DefaultConfig() Config {
	return Config{
		DialTimeout:   DefaultDialTimeout,
		ReadChunkSize: DefaultReadChunkSize,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
	}
}

// ApplyArgs sets Host and Port from the two positional arguments.
func (c *Config) ApplyArgs(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected <host> <port>, got %d arguments", len(args))
	}
	port, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("parse port %q: %w", args[1], err)
	}
	c.Host = args[0]
	c.Port = port
	return nil
}

// Validate checks the configuration for errors and normalizes values.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	if c.DialTimeout <= 0 {
		return fmt.Errorf("dial timeout must be positive")
	}
	if c.ReadChunkSize <= 0 {
		return fmt.Errorf("read chunk size must be positive")
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("log format %q must be console or json", c.LogFormat)
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
