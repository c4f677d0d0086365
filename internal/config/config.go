package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"showreel/internal/eventbus"
)

// ErrInvalidOptions is returned by Validate
var ErrInvalidOptions = errors.New("invalid options")

// Config represents the application configuration
type Config struct {
	Version   int               `toml:"version"`
	MediaDir  string            `toml:"media_dir"`
	Slideshow SlideshowSettings `toml:"slideshow"`
	Carousel  CarouselSettings  `toml:"carousel"`
	UI        UISettings        `toml:"ui"`
	Telemetry TelemetrySettings `toml:"telemetry"`
}

// SlideshowSettings configures the background rotator
type SlideshowSettings struct {
	Images    []string `toml:"images"`
	CenteredX bool     `toml:"centered_x"`
	CenteredY bool     `toml:"centered_y"`
	Duration  Duration `toml:"duration"` // time between slides
	Fade      Duration `toml:"fade"`     // fade transition speed, 0 for a hard cut
}

// CarouselSettings configures the item carousel
type CarouselSettings struct {
	Items        []ItemSettings `toml:"items"`
	Visible      int            `toml:"visible"`
	Scroll       int            `toml:"scroll"`
	Circular     bool           `toml:"circular"`
	Auto         Duration       `toml:"auto"` // 0 disables auto-advance
	Speed        Duration       `toml:"speed"`
	Easing       string         `toml:"easing"` // "swing" or "linear"
	Vertical     bool           `toml:"vertical"`
	PauseOnHover bool           `toml:"pause_on_hover"`
	StopOnClick  bool           `toml:"stop_on_click"`
	Start        int            `toml:"start"`
	MouseWheel   bool           `toml:"mouse_wheel"`
	Randomize    bool           `toml:"randomize"` // random start chosen by the bootstrap
	ItemWidth    int            `toml:"item_width"`
	ItemHeight   int            `toml:"item_height"`
	ItemMargin   int            `toml:"item_margin"`
}

// ItemSettings describes one carousel item
type ItemSettings struct {
	ID      string `toml:"id"`
	Title   string `toml:"title"`
	Body    string `toml:"body"`
	Src     string `toml:"src"`
	Variant string `toml:"variant"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	CompactWidth int  `toml:"compact_width"` // below this many columns the carousel shows one item
	ShowStatus   bool `toml:"show_status"`
	ShowHelp     bool `toml:"show_help"`
}

// TelemetrySettings configures OTLP trace export
type TelemetrySettings struct {
	Endpoint    string `toml:"endpoint"` // empty disables export
	ServiceName string `toml:"service_name"`
	Insecure    bool   `toml:"insecure"`
}

// Duration is a time.Duration that reads and writes as a string ("5s").
// An empty string decodes to zero.
type Duration struct {
	time.Duration
}

// D is shorthand for building a Duration
func D(d time.Duration) Duration { return Duration{d} }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
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

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "showreel", "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// NewConfigServiceAt creates a config service bound to an explicit file
func NewConfigServiceAt(path string, bus eventbus.EventBus) ConfigService {
	return &configService{bus: bus, filePath: path}
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration from file, falling back to defaults when the
// file does not exist yet
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publish(eventbus.ConfigLoadedEvent{Path: ""})
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	cs.publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
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

func (cs *configService) publish(e eventbus.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Publish(e)
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Slideshow: SlideshowSettings{
			CenteredX: true,
			CenteredY: true,
			Duration:  D(5 * time.Second),
			Fade:      D(0),
		},
		Carousel: CarouselSettings{
			Visible:      3,
			Scroll:       1,
			Circular:     true,
			Auto:         D(15 * time.Second),
			Speed:        D(time.Second),
			Easing:       "swing",
			PauseOnHover: true,
			StopOnClick:  true,
			Start:        0,
			Randomize:    true,
			ItemWidth:    24,
			ItemHeight:   9,
			ItemMargin:   1,
		},
		UI: UISettings{
			CompactWidth: 60,
			ShowStatus:   true,
			ShowHelp:     true,
		},
		Telemetry: TelemetrySettings{
			ServiceName: "showreel",
		},
	}
}

// Validate checks option ranges. Item counts against Visible are checked by
// the carousel itself since items may come from discovery.
func (c *Config) Validate() error {
	switch {
	case c.Slideshow.Duration.Duration <= 0:
		return fmt.Errorf("%w: slideshow.duration must be positive", ErrInvalidOptions)
	case c.Slideshow.Fade.Duration < 0:
		return fmt.Errorf("%w: slideshow.fade must not be negative", ErrInvalidOptions)
	case c.Carousel.Visible < 1:
		return fmt.Errorf("%w: carousel.visible must be at least 1", ErrInvalidOptions)
	case c.Carousel.Scroll < 1:
		return fmt.Errorf("%w: carousel.scroll must be at least 1", ErrInvalidOptions)
	case c.Carousel.Auto.Duration < 0:
		return fmt.Errorf("%w: carousel.auto must not be negative", ErrInvalidOptions)
	case c.Carousel.Speed.Duration < 0:
		return fmt.Errorf("%w: carousel.speed must not be negative", ErrInvalidOptions)
	case c.Carousel.Start < 0:
		return fmt.Errorf("%w: carousel.start must not be negative", ErrInvalidOptions)
	case c.Carousel.Easing != "swing" && c.Carousel.Easing != "linear":
		return fmt.Errorf("%w: carousel.easing must be swing or linear, got %q", ErrInvalidOptions, c.Carousel.Easing)
	case c.Carousel.ItemWidth < 4 || c.Carousel.ItemHeight < 3:
		return fmt.Errorf("%w: carousel item cells must be at least 4x3", ErrInvalidOptions)
	case c.Carousel.ItemMargin < 0:
		return fmt.Errorf("%w: carousel.item_margin must not be negative", ErrInvalidOptions)
	}
	return nil
}
