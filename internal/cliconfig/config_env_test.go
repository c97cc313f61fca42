package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"DRIVECLI_LOG_LEVEL":       "debug",
				"DRIVECLI_LOG_FORMAT":      "json",
				"DRIVECLI_DIAL_TIMEOUT":    "1m",
				"DRIVECLI_READ_CHUNK_SIZE": "8192",
				"DRIVECLI_WATCH_CONFIG":    "true",
			},
			changed: map[string]bool{},
			expected: Config{
				LogLevel:      "debug",
				LogFormat:     "json",
				DialTimeout:   time.Minute,
				ReadChunkSize: 8192,
				WatchConfig:   true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"DRIVECLI_LOG_LEVEL":    "debug",
				"DRIVECLI_DIAL_TIMEOUT": "1m",
			},
			changed:  map[string]bool{"log-level": true, "dial-timeout": true},
			initial:  Config{LogLevel: "error", DialTimeout: time.Second},
			expected: Config{LogLevel: "error", DialTimeout: time.Second},
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"DRIVECLI_DIAL_TIMEOUT": "not-a-duration"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid int",
			envVars: map[string]string{"DRIVECLI_READ_CHUNK_SIZE": "lots"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:     "ignores non-positive chunk size",
			envVars:  map[string]string{"DRIVECLI_READ_CHUNK_SIZE": "0"},
			changed:  map[string]bool{},
			initial:  Config{ReadChunkSize: 4096},
			expected: Config{ReadChunkSize: 4096},
		},
		{
			name:     "handles bool '1' as true",
			envVars:  map[string]string{"DRIVECLI_WATCH_CONFIG": "1"},
			changed:  map[string]bool{},
			expected: Config{WatchConfig: true},
		},
		{
			name:     "handles bool 'false' as false",
			envVars:  map[string]string{"DRIVECLI_WATCH_CONFIG": "false"},
			changed:  map[string]bool{},
			initial:  Config{WatchConfig: true},
			expected: Config{WatchConfig: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{
				"DRIVECLI_LOG_LEVEL",
				"DRIVECLI_LOG_FORMAT",
				"DRIVECLI_DIAL_TIMEOUT",
				"DRIVECLI_READ_CHUNK_SIZE",
				"DRIVECLI_WATCH_CONFIG",
			} {
				t.Setenv(key, "")
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg != tt.expected {
				t.Errorf("ApplyEnvConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestConfigPrecedence(t *testing.T) {
	t.Setenv("DRIVECLI_LOG_LEVEL", "info")
	t.Setenv("DRIVECLI_DIAL_TIMEOUT", "")
	t.Setenv("DRIVECLI_READ_CHUNK_SIZE", "2048")
	t.Setenv("DRIVECLI_LOG_FORMAT", "")
	t.Setenv("DRIVECLI_WATCH_CONFIG", "")

	cfg := DefaultConfig()
	cfg.ReadChunkSize = 100 // set by --read-chunk
	changed := map[string]bool{"read-chunk": true}

	fc := FileConfig{LogLevel: "debug", DialTimeout: "5s", ReadChunkSize: 512}
	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}

	if cfg.ReadChunkSize != 100 {
		t.Errorf("ReadChunkSize = %d, want flag value 100", cfg.ReadChunkSize)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want env value info", cfg.LogLevel)
	}
	if cfg.DialTimeout != 5*time.Second {
		t.Errorf("DialTimeout = %v, want file value 5s", cfg.DialTimeout)
	}
	if cfg.LogFormat != DefaultLogFormat {
		t.Errorf("LogFormat = %q, want default", cfg.LogFormat)
	}
}
