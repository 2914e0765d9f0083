package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	log_level
//	tags
//	default_tag
//	frame.fraction_min
//	frame.fraction_max
//	frame.default_algorithm
//	gap_size
//	screen_padding.top
//	sync_interval
//	limits.max_tags
//	presets
//	presets.<name>
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	if name, ok := strings.CutPrefix(path, "presets."); ok {
		if _, builtin := BuiltinPresets()[name]; builtin {
			return value, Source{Kind: SourceBuiltin, Name: name}, nil
		}
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	leaf := func(v any) (any, error) {
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return v, nil
	}

	switch parts[0] {
	case "log_level":
		return leaf(cfg.LogLevel)
	case "tags":
		return leaf(cfg.Tags)
	case "default_tag":
		return leaf(cfg.DefaultTag)
	case "gap_size":
		return leaf(cfg.GapSize)
	case "sync_interval":
		return leaf(cfg.SyncInterval.String())
	case "frame":
		if len(parts) == 1 {
			return cfg.Frame, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "fraction_min":
			return cfg.Frame.FractionMin, nil
		case "fraction_max":
			return cfg.Frame.FractionMax, nil
		case "default_algorithm":
			return cfg.Frame.DefaultAlgorithm, nil
		}
	case "screen_padding":
		if len(parts) == 1 {
			return cfg.ScreenPadding, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "top":
			return cfg.ScreenPadding.Top, nil
		case "bottom":
			return cfg.ScreenPadding.Bottom, nil
		case "left":
			return cfg.ScreenPadding.Left, nil
		case "right":
			return cfg.ScreenPadding.Right, nil
		}
	case "limits":
		if len(parts) == 2 && parts[1] == "max_tags" {
			return cfg.Limits.MaxTags, nil
		}
	case "presets":
		if len(parts) == 1 {
			return cfg.PresetNames(), nil
		}
		name := strings.Join(parts[1:], ".")
		if text, ok := cfg.Presets[name]; ok {
			return text, nil
		}
		return nil, fmt.Errorf("unknown preset: %s", name)
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}
