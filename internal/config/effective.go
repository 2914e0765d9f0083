package config

import (
	"fmt"
	"time"
)

// ValidationError points at the config key that failed and, when known,
// the file position that set it.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig overlays the merged raw config on the defaults.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.Tags != nil {
		cfg.Tags = append([]string(nil), raw.Tags...)
		if raw.DefaultTag == nil && len(cfg.Tags) > 0 {
			cfg.DefaultTag = cfg.Tags[0]
		}
	}
	if raw.DefaultTag != nil {
		cfg.DefaultTag = *raw.DefaultTag
	}
	if raw.Frame != nil {
		if raw.Frame.FractionMin != nil {
			cfg.Frame.FractionMin = *raw.Frame.FractionMin
		}
		if raw.Frame.FractionMax != nil {
			cfg.Frame.FractionMax = *raw.Frame.FractionMax
		}
		if raw.Frame.DefaultAlgorithm != nil {
			cfg.Frame.DefaultAlgorithm = *raw.Frame.DefaultAlgorithm
		}
	}
	if raw.GapSize != nil {
		cfg.GapSize = *raw.GapSize
	}
	if raw.ScreenPadding != nil {
		if raw.ScreenPadding.Top != nil {
			cfg.ScreenPadding.Top = *raw.ScreenPadding.Top
		}
		if raw.ScreenPadding.Bottom != nil {
			cfg.ScreenPadding.Bottom = *raw.ScreenPadding.Bottom
		}
		if raw.ScreenPadding.Left != nil {
			cfg.ScreenPadding.Left = *raw.ScreenPadding.Left
		}
		if raw.ScreenPadding.Right != nil {
			cfg.ScreenPadding.Right = *raw.ScreenPadding.Right
		}
	}
	if raw.SyncInterval != nil {
		d, err := time.ParseDuration(*raw.SyncInterval)
		if err != nil {
			return nil, &ValidationError{Path: "sync_interval", Err: err}
		}
		cfg.SyncInterval = d
	}
	if raw.Limits != nil && raw.Limits.MaxTags != nil {
		cfg.Limits.MaxTags = *raw.Limits.MaxTags
	}
	for name, text := range raw.Presets {
		if name == "" {
			return nil, &ValidationError{Path: "presets", Err: fmt.Errorf("preset names must not be empty")}
		}
		cfg.Presets[name] = text
	}

	return cfg, nil
}
