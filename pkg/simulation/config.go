package simulation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

//go:embed schema/config.schema.json
var configSchema string

var (
	// ErrInvalidConfig wraps every configuration problem found while loading or validating.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidRange is reported when a min/max pair is reversed.
	ErrInvalidRange = errors.New("minimum is greater than maximum")
)

type Config struct {
	// Population
	NumAgents int    `json:"numAgents"`
	Seed      uint64 `json:"seed"`

	// Flocking
	Speed              float64           `json:"speed"`
	MinInfluenceRadius float64           `json:"minInfluenceRadius"`
	MaxInfluenceRadius float64           `json:"maxInfluenceRadius"`
	DefaultHeading     geometry.Vector2D `json:"defaultHeading"` // used by agents with no heading at all
	Workers            int               `json:"workers"`

	// Rendering
	MinSize        float64 `json:"minSize"`
	MaxSize        float64 `json:"maxSize"`
	ViewHalfWidth  float64 `json:"viewHalfWidth"`
	ViewHalfHeight float64 `json:"viewHalfHeight"`
	ShowInfluence  bool    `json:"showInfluence"`

	TicksPerSecond int    `json:"ticksPerSecond"`
	LogLevel       string `json:"logLevel"`
}

func DefaultConfig() *Config {
	return &Config{
		NumAgents:          200,
		Seed:               1,
		Speed:              flock.DefaultSpeed,
		MinInfluenceRadius: 25,
		MaxInfluenceRadius: 60,
		DefaultHeading:     geometry.Vector2D{X: 1, Y: 0},
		Workers:            1,
		MinSize:            8,
		MaxSize:            14,
		ViewHalfWidth:      640,
		ViewHalfHeight:     360,
		TicksPerSecond:     60,
		LogLevel:           "info",
	}
}

// LoadConfig loads configuration from a JSON file, validates it against the embedded
// schema and applies it on top of DefaultConfig.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(b)
}

// ParseConfig is LoadConfig for JSON already in memory.
func ParseConfig(b []byte) (*Config, error) {
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config json: %w", ErrInvalidConfig, err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the constraints that hold across fields.
func (c *Config) Validate() error {
	switch {
	case c.NumAgents < 0:
		return fmt.Errorf("%w: numAgents must not be negative", ErrInvalidConfig)
	case flock.ValidateSpeed(c.Speed) != nil:
		return fmt.Errorf("%w: %w", ErrInvalidConfig, flock.ErrInvalidSpeed)
	case c.MinInfluenceRadius < 0:
		return fmt.Errorf("%w: minInfluenceRadius must not be negative", ErrInvalidConfig)
	case c.MinInfluenceRadius > c.MaxInfluenceRadius:
		return fmt.Errorf("%w: influence radius: %w", ErrInvalidConfig, ErrInvalidRange)
	case c.MinSize <= 0:
		return fmt.Errorf("%w: minSize must be positive", ErrInvalidConfig)
	case c.MinSize > c.MaxSize:
		return fmt.Errorf("%w: size: %w", ErrInvalidConfig, ErrInvalidRange)
	case c.ViewHalfWidth <= 0 || c.ViewHalfHeight <= 0:
		return fmt.Errorf("%w: view extents must be positive", ErrInvalidConfig)
	case c.TicksPerSecond <= 0:
		return fmt.Errorf("%w: ticksPerSecond must be positive", ErrInvalidConfig)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// NewLogger builds the logger for the configured level writing to w.
func (c *Config) NewLogger(w io.Writer) log.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.New(level, w)
}

// UpdaterOptions translates the flocking settings into flock.Updater options.
func (c *Config) UpdaterOptions(logger log.Logger) []flock.Option {
	return []flock.Option{
		flock.WithSpeed(c.Speed),
		flock.WithDefaultHeading(c.DefaultHeading),
		flock.WithWorkers(c.Workers),
		flock.WithLogger(logger),
	}
}

func parseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarningLevel, nil
	case "error":
		return log.ErrorLevel, nil
	}
	return log.InfoLevel, fmt.Errorf("unknown log level %q", s)
}
