package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				DialTimeout:   "3s",
				ReadChunkSize: 1024,
				LogLevel:      "debug",
				LogFormat:     "json",
				WatchConfig:   &trueVal,
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				DialTimeout:   3 * time.Second,
				ReadChunkSize: 1024,
				LogLevel:      "debug",
				LogFormat:     "json",
				WatchConfig:   true,
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				LogLevel:    "debug",
				DialTimeout: "3s",
			},
			changed: map[string]bool{"log-level": true},
			initial: Config{LogLevel: "error"},
			expected: Config{
				LogLevel:    "error", // unchanged because flag was set
				DialTimeout: 3 * time.Second,
			},
		},
		{
			name:       "ignores zero values",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    DefaultConfig(),
			expected:   DefaultConfig(),
		},
		{
			name:       "returns error for invalid duration",
			fileConfig: FileConfig{DialTimeout: "soon"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyFileConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg != tt.expected {
				t.Errorf("ApplyFileConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "config.toml")
		content := strings.TrimSpace(`
dial_timeout = "2s"
read_chunk_size = 512
log_level = "info"
log_format = "json"
watch_config = true
`)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		fc, err := LoadFileConfig(path)
		if err != nil {
			t.Fatalf("LoadFileConfig: %v", err)
		}
		if fc.DialTimeout != "2s" || fc.ReadChunkSize != 512 || fc.LogLevel != "info" || fc.LogFormat != "json" {
			t.Errorf("LoadFileConfig = %+v", fc)
		}
		if fc.WatchConfig == nil || !*fc.WatchConfig {
			t.Errorf("WatchConfig = %v, want true", fc.WatchConfig)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFileConfig(filepath.Join(tmpDir, "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := filepath.Join(tmpDir, "bad.toml")
		if err := os.WriteFile(path, []byte("log_level = = \"x\""), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := LoadFileConfig(path); err == nil {
			t.Error("expected error for invalid toml")
		}
	})
}

func TestDefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	want := filepath.Join(home, ".drivecli", "config.toml")
	if got := DefaultConfigPath(); got != want {
		t.Errorf("DefaultConfigPath() = %q, want %q", got, want)
	}
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "present")
	if FileExists(path) {
		t.Fatal("FileExists before create = true")
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("FileExists after create = false")
	}
}
