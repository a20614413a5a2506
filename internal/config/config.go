package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"scrollpager/internal/eventbus"
	"scrollpager/internal/logging"
)

// ErrNotFound is returned when a config file does not exist
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Version   int            `toml:"version"`
	Source    string         `toml:"source"` // file to page through, empty for the synthetic feed
	PageSize  int            `toml:"page_size"`
	StartPage int            `toml:"start_page"`
	Scroll    ScrollSettings `toml:"scroll"`
	UI        UISettings     `toml:"ui"`
	Log       logging.Config `toml:"log"`
}

// ScrollSettings tunes the pagination trigger
type ScrollSettings struct {
	LoadBuffer int  `toml:"load_buffer"`
	DebounceMS int  `toml:"debounce_ms"`
	Enable     bool `toml:"enable"`
}

// Debounce returns the debounce window as a duration
func (s ScrollSettings) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowPageMarkers bool `toml:"show_page_markers"`
	AutosaveOnExit  bool `toml:"autosave_on_exit"`
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", c.PageSize)
	}
	if c.StartPage < 1 {
		return fmt.Errorf("start_page must be at least 1, got %d", c.StartPage)
	}
	if c.Scroll.LoadBuffer < 1 {
		return fmt.Errorf("scroll.load_buffer must be at least 1, got %d", c.Scroll.LoadBuffer)
	}
	if c.Scroll.DebounceMS < 0 {
		return fmt.Errorf("scroll.debounce_ms must not be negative, got %d", c.Scroll.DebounceMS)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "scrollpager", "config.toml")
}

// NewConfigService creates a config service reading path; empty path means DefaultPath
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it is missing
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Source:    cfg.Source,
			StartPage: cfg.StartPage,
			PageSize:  cfg.PageSize,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		PageSize:  25,
		StartPage: 1,
		Scroll: ScrollSettings{
			LoadBuffer: 3,
			DebounceMS: 100,
			Enable:     true,
		},
		UI: UISettings{
			ShowPageMarkers: true,
		},
		Log: logging.DefaultConfig(),
	}
}
