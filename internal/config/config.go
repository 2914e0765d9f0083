// Package config loads the frametile YAML configuration: strict decoding,
// include files, defaults and per-key source tracking.
package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/ldl"
	"github.com/1broseidon/frametile/internal/workspace"
)

// Margins are pixel offsets on each screen edge.
type Margins struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// FrameConfig controls frame construction.
type FrameConfig struct {
	FractionMin      float64 `yaml:"fraction_min"`
	FractionMax      float64 `yaml:"fraction_max"`
	DefaultAlgorithm string  `yaml:"default_algorithm"`
}

// Limits caps registry growth. Zero means unlimited.
type Limits struct {
	MaxTags int `yaml:"max_tags"`
}

// Config holds the application configuration.
type Config struct {
	LogLevel      string            `yaml:"log_level"`
	Tags          []string          `yaml:"tags"`
	DefaultTag    string            `yaml:"default_tag"`
	Frame         FrameConfig       `yaml:"frame"`
	GapSize       int               `yaml:"gap_size"`
	ScreenPadding Margins           `yaml:"screen_padding"`
	SyncInterval  time.Duration     `yaml:"sync_interval"`
	Limits        Limits            `yaml:"limits,omitempty"`
	Presets       map[string]string `yaml:"presets"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:   "info",
		Tags:       []string{workspace.DefaultTag},
		DefaultTag: workspace.DefaultTag,
		Frame: FrameConfig{
			FractionMin:      frame.DefaultFractionMin,
			FractionMax:      frame.DefaultFractionMax,
			DefaultAlgorithm: frame.AlgorithmVertical.String(),
		},
		SyncInterval: 2 * time.Second,
		Presets:      BuiltinPresets(),
	}
}

// Bounds returns the configured fraction bounds.
func (c *Config) Bounds() frame.Bounds {
	return frame.Bounds{FractionMin: c.Frame.FractionMin, FractionMax: c.Frame.FractionMax}
}

// WorkspaceOptions converts the config into registry options. The config
// must have been validated.
func (c *Config) WorkspaceOptions() workspace.Options {
	algo, err := frame.ParseAlgorithm(c.Frame.DefaultAlgorithm)
	if err != nil {
		algo = frame.AlgorithmVertical
	}
	return workspace.Options{
		Bounds:           c.Bounds(),
		DefaultAlgorithm: algo,
		MaxTags:          c.Limits.MaxTags,
	}
}

// OrderedTags returns the tag list with the default tag first.
func (c *Config) OrderedTags() []string {
	out := []string{c.DefaultTag}
	for _, t := range c.Tags {
		if t != c.DefaultTag {
			out = append(out, t)
		}
	}
	return out
}

// Level maps log_level onto a logger level.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Preset returns the layout text of a named preset.
func (c *Config) Preset(name string) (string, error) {
	text, ok := c.Presets[name]
	if !ok {
		return "", fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(c.PresetNames(), ", "))
	}
	return text, nil
}

// PresetNames lists preset names sorted.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}

	if len(c.Tags) == 0 {
		return &ValidationError{Path: "tags", Err: fmt.Errorf("tags must not be empty")}
	}
	seen := make(map[string]bool, len(c.Tags))
	for _, t := range c.Tags {
		if strings.TrimSpace(t) == "" {
			return &ValidationError{Path: "tags", Err: fmt.Errorf("tag names must not be empty")}
		}
		if seen[t] {
			return &ValidationError{Path: "tags", Err: fmt.Errorf("duplicate tag %q", t)}
		}
		seen[t] = true
	}
	if !seen[c.DefaultTag] {
		return &ValidationError{Path: "default_tag", Err: fmt.Errorf("default_tag %q not found in tags", c.DefaultTag)}
	}

	if err := c.Bounds().Validate(); err != nil {
		return &ValidationError{Path: "frame", Err: err}
	}
	if _, err := frame.ParseAlgorithm(c.Frame.DefaultAlgorithm); err != nil {
		return &ValidationError{Path: "frame.default_algorithm", Err: err}
	}

	if c.GapSize < 0 {
		return &ValidationError{Path: "gap_size", Err: fmt.Errorf("gap_size must be >= 0")}
	}
	if c.ScreenPadding.Top < 0 || c.ScreenPadding.Bottom < 0 || c.ScreenPadding.Left < 0 || c.ScreenPadding.Right < 0 {
		return &ValidationError{Path: "screen_padding", Err: fmt.Errorf("screen_padding values must be >= 0")}
	}
	if c.SyncInterval <= 0 {
		return &ValidationError{Path: "sync_interval", Err: fmt.Errorf("sync_interval must be positive")}
	}
	if c.Limits.MaxTags < 0 {
		return &ValidationError{Path: "limits.max_tags", Err: fmt.Errorf("max_tags must be >= 0")}
	}
	if c.Limits.MaxTags > 0 && len(c.Tags) > c.Limits.MaxTags {
		return &ValidationError{Path: "limits.max_tags", Err: fmt.Errorf("%d tags configured but max_tags is %d", len(c.Tags), c.Limits.MaxTags)}
	}

	for _, name := range c.PresetNames() {
		if _, err := ldl.Parse(c.Presets[name], ldl.WithBounds(c.Bounds())); err != nil {
			return &ValidationError{Path: "presets." + name, Err: err}
		}
	}
	return nil
}
