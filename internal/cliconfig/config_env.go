package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (DRIVECLI_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", os.Getenv("DRIVECLI_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv("DRIVECLI_LOG_FORMAT"), &cfg.LogFormat)
	s.setBoolFromString("watch-config", os.Getenv("DRIVECLI_WATCH_CONFIG"), &cfg.WatchConfig)

	if err := s.setDuration("dial-timeout", os.Getenv("DRIVECLI_DIAL_TIMEOUT"), &cfg.DialTimeout); err != nil {
		return err
	}
	return s.setIntFromString("read-chunk", os.Getenv("DRIVECLI_READ_CHUNK_SIZE"), &cfg.ReadChunkSize)
}
