package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors the optional settings of Config with TOML-friendly types.
// The server address is never read from the file.
type FileConfig struct {
	DialTimeout   string `toml:"dial_timeout"`
	ReadChunkSize int    `toml:"read_chunk_size"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	WatchConfig   *bool  `toml:"watch_config"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.drivecli/config.toml, or "" without a home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".drivecli", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)
	s.setInt("read-chunk", fc.ReadChunkSize, &cfg.ReadChunkSize)
	s.setBool("watch-config", fc.WatchConfig, &cfg.WatchConfig)

	return s.setDuration("dial-timeout", fc.DialTimeout, &cfg.DialTimeout)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
