// Package config handles configuration loading and validation for folio
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iiroan/folio/internal/kv"
	"github.com/iiroan/folio/internal/platform"
)

// FileName is the configuration file name inside the config directory.
const FileName = "folio.yaml"

// Config represents the main configuration for folio
type Config struct {
	// Preference storage
	Store StoreConfig `yaml:"store"`

	// Text-to-speech engine
	Speech SpeechConfig `yaml:"speech"`

	// Terminal presentation
	UI UIConfig `yaml:"ui"`
}

// StoreConfig selects where preferences are persisted
type StoreConfig struct {
	Backend string      `yaml:"backend"` // file, sqlite, redis or memory
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`
	Watch   bool        `yaml:"watch"` // reload when another process edits the file store
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Addr string `yaml:"addr"`
	Key  string `yaml:"key"`
}

// SpeechConfig holds speech playback settings
type SpeechConfig struct {
	Command   string `yaml:"command"`
	KeepAlive string `yaml:"keep_alive"`
	Timeout   string `yaml:"timeout"`
	// Secondary is the language tried when no voice matches the UI language.
	Secondary string `yaml:"secondary_language"`
}

// UIConfig holds presentation settings
type UIConfig struct {
	SavedDelay string `yaml:"saved_delay"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *Config {
	dir := platform.ConfigDir()
	return &Config{
		Store: StoreConfig{
			Backend: "file",
			Path:    filepath.Join(dir, "preferences.yaml"),
			Redis: RedisConfig{
				Addr: "localhost:6379",
				Key:  "folio:preferences",
			},
			Watch: true,
		},
		Speech: SpeechConfig{
			Command:   platform.SpeechCommand(),
			KeepAlive: "5s",
			Timeout:   "10m",
			Secondary: "en",
		},
		UI: UIConfig{
			SavedDelay: "3s",
		},
	}
}

// DefaultPath returns the path folio.yaml is read from when --config is
// not given
func DefaultPath() string {
	return filepath.Join(platform.ConfigDir(), FileName)
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch NormalizeBackend(c.Store.Backend) {
	case "file", "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the %s backend", c.Store.Backend)
		}
	case "redis":
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("store.redis.addr is required")
		}
	case "memory":
	default:
		return fmt.Errorf("store.backend %q is not one of file, sqlite, redis, memory", c.Store.Backend)
	}
	for name, value := range map[string]string{
		"speech.keep_alive": c.Speech.KeepAlive,
		"speech.timeout":    c.Speech.Timeout,
		"ui.saved_delay":    c.UI.SavedDelay,
	} {
		if _, err := parseDuration(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// StoreOptions converts the store section for kv.Open
func (c *Config) StoreOptions() kv.Options {
	return kv.Options{
		Backend:   NormalizeBackend(c.Store.Backend),
		Path:      c.Store.Path,
		RedisAddr: c.Store.Redis.Addr,
		RedisKey:  c.Store.Redis.Key,
	}
}

// KeepAlive returns the speech keep-alive interval
func (c *Config) KeepAlive() time.Duration {
	d, _ := parseDuration(c.Speech.KeepAlive)
	return d
}

// SpeechTimeout bounds a single utterance
func (c *Config) SpeechTimeout() time.Duration {
	d, _ := parseDuration(c.Speech.Timeout)
	return d
}

// SavedDelay returns how long the saved indicator stays visible
func (c *Config) SavedDelay() time.Duration {
	d, _ := parseDuration(c.UI.SavedDelay)
	return d
}

// parseDuration treats an empty value as zero
func parseDuration(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// NormalizeBackend normalizes a backend name; empty means file
func NormalizeBackend(backend string) string {
	backend = strings.ToLower(strings.TrimSpace(backend))
	if backend == "" {
		return "file"
	}
	return backend
}
