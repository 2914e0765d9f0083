package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// Raw* types mirror the file format with pointers so that an unset key can
// be told apart from a zero value while merging includes.

type RawMargins struct {
	Top    *int `yaml:"top"`
	Bottom *int `yaml:"bottom"`
	Left   *int `yaml:"left"`
	Right  *int `yaml:"right"`
}

type RawFrame struct {
	FractionMin      *float64 `yaml:"fraction_min"`
	FractionMax      *float64 `yaml:"fraction_max"`
	DefaultAlgorithm *string  `yaml:"default_algorithm"`
}

type RawLimits struct {
	MaxTags *int `yaml:"max_tags"`
}

type RawConfig struct {
	Include       IncludeList       `yaml:"include"`
	LogLevel      *string           `yaml:"log_level"`
	Tags          []string          `yaml:"tags"`
	DefaultTag    *string           `yaml:"default_tag"`
	Frame         *RawFrame         `yaml:"frame"`
	GapSize       *int              `yaml:"gap_size"`
	ScreenPadding *RawMargins       `yaml:"screen_padding"`
	SyncInterval  *string           `yaml:"sync_interval"`
	Limits        *RawLimits        `yaml:"limits"`
	Presets       map[string]string `yaml:"presets"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Tags != nil {
		out.Tags = append([]string(nil), overlay.Tags...)
	}
	if overlay.DefaultTag != nil {
		out.DefaultTag = overlay.DefaultTag
	}
	if overlay.Frame != nil {
		base := RawFrame{}
		if out.Frame != nil {
			base = *out.Frame
		}
		merged := mergeRawFrame(base, *overlay.Frame)
		out.Frame = &merged
	}
	if overlay.GapSize != nil {
		out.GapSize = overlay.GapSize
	}
	if overlay.ScreenPadding != nil {
		base := RawMargins{}
		if out.ScreenPadding != nil {
			base = *out.ScreenPadding
		}
		merged := mergeRawMargins(base, *overlay.ScreenPadding)
		out.ScreenPadding = &merged
	}
	if overlay.SyncInterval != nil {
		out.SyncInterval = overlay.SyncInterval
	}
	if overlay.Limits != nil {
		merged := RawLimits{}
		if out.Limits != nil {
			merged = *out.Limits
		}
		if overlay.Limits.MaxTags != nil {
			merged.MaxTags = overlay.Limits.MaxTags
		}
		out.Limits = &merged
	}
	if overlay.Presets != nil {
		presets := make(map[string]string, len(out.Presets)+len(overlay.Presets))
		for name, text := range out.Presets {
			presets[name] = text
		}
		for name, text := range overlay.Presets {
			presets[name] = text
		}
		out.Presets = presets
	}

	return out
}

func mergeRawFrame(base RawFrame, overlay RawFrame) RawFrame {
	out := base
	if overlay.FractionMin != nil {
		out.FractionMin = overlay.FractionMin
	}
	if overlay.FractionMax != nil {
		out.FractionMax = overlay.FractionMax
	}
	if overlay.DefaultAlgorithm != nil {
		out.DefaultAlgorithm = overlay.DefaultAlgorithm
	}
	return out
}

func mergeRawMargins(base RawMargins, overlay RawMargins) RawMargins {
	out := base
	if overlay.Top != nil {
		out.Top = overlay.Top
	}
	if overlay.Bottom != nil {
		out.Bottom = overlay.Bottom
	}
	if overlay.Left != nil {
		out.Left = overlay.Left
	}
	if overlay.Right != nil {
		out.Right = overlay.Right
	}
	return out
}
