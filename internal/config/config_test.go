package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/ldl"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Bounds() != frame.DefaultBounds() {
		t.Fatalf("unexpected default bounds: %+v", cfg.Bounds())
	}
	if _, err := cfg.Preset("columns"); err != nil {
		t.Fatalf("expected builtin preset: %v", err)
	}
}

func TestBuiltinPresetsParse(t *testing.T) {
	for name, text := range BuiltinPresets() {
		node, err := ldl.Parse(text)
		if err != nil {
			t.Fatalf("preset %s: %v", name, err)
		}
		if !ldl.Partial(node) {
			t.Fatalf("preset %s should leave window lists empty", name)
		}
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.DefaultTag != "default" {
		t.Fatalf("expected default tag, got %q", res.Config.DefaultTag)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
}

func TestLoadFromPath_AllKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"log_level: debug",
		"tags: [web, code, chat]",
		"default_tag: code",
		"frame:",
		"  fraction_min: 0.05",
		"  fraction_max: 0.95",
		"  default_algorithm: grid",
		"gap_size: 8",
		"screen_padding:",
		"  top: 30",
		"sync_interval: 500ms",
		"limits:",
		"  max_tags: 5",
		"presets:",
		"  wide: \"(split horizontal:0.95:0 (clients max:0) (clients max:0))\"",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.LogLevel != "debug" || cfg.GapSize != 8 || cfg.ScreenPadding.Top != 30 {
		t.Fatalf("unexpected scalars: %+v", cfg)
	}
	if cfg.SyncInterval != 500*time.Millisecond {
		t.Fatalf("sync_interval = %v", cfg.SyncInterval)
	}
	if got := cfg.OrderedTags(); strings.Join(got, ",") != "code,web,chat" {
		t.Fatalf("OrderedTags() = %v", got)
	}

	opts := cfg.WorkspaceOptions()
	if opts.DefaultAlgorithm != frame.AlgorithmGrid || opts.MaxTags != 5 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.Bounds.FractionMin != 0.05 || opts.Bounds.FractionMax != 0.95 {
		t.Fatalf("unexpected bounds: %+v", opts.Bounds)
	}

	if _, err := cfg.Preset("wide"); err != nil {
		t.Fatalf("expected user preset: %v", err)
	}
	if _, err := cfg.Preset("columns"); err != nil {
		t.Fatalf("builtin presets must survive user presets: %v", err)
	}
}

func TestLoadFromPath_TagsWithoutDefaultTagUseFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "tags: [one, two]\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.DefaultTag != "one" {
		t.Fatalf("expected default_tag one, got %q", res.Config.DefaultTag)
	}
}

func TestLoadFromPath_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "hotkey: Mod4-t\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected strict decoding to reject unknown key")
	}
}

func TestLoadFromPath_InvalidPresetReportsOffsetAndLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"presets:",
		"  broken: \"(clients max:0 0x1\"",
		"",
	}, "\n"))

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "presets.broken" || verr.Source.Line != 2 {
		t.Fatalf("unexpected validation error: %+v", verr)
	}
	var syn *ldl.SyntaxError
	if !errors.As(err, &syn) || syn.Offset != 18 {
		t.Fatalf("expected syntax error at 18, got %v", err)
	}
}

func TestLoadFromPath_PresetUsesConfiguredBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"frame:",
		"  fraction_min: 0.3",
		"presets:",
		"  narrow: \"(split horizontal:0.2:0 (clients max:0) (clients max:0))\"",
		"",
	}, "\n"))

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "presets.narrow" {
		t.Fatalf("expected preset rejected by bounds, got %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"no tags", func(c *Config) { c.Tags = nil }, "tags"},
		{"dup tags", func(c *Config) { c.Tags = []string{"a", "a"}; c.DefaultTag = "a" }, "tags"},
		{"default tag", func(c *Config) { c.DefaultTag = "missing" }, "default_tag"},
		{"bounds", func(c *Config) { c.Frame.FractionMin = 0.95 }, "frame"},
		{"algorithm", func(c *Config) { c.Frame.DefaultAlgorithm = "spiral" }, "frame.default_algorithm"},
		{"gap", func(c *Config) { c.GapSize = -1 }, "gap_size"},
		{"padding", func(c *Config) { c.ScreenPadding.Left = -4 }, "screen_padding"},
		{"sync", func(c *Config) { c.SyncInterval = 0 }, "sync_interval"},
		{"max tags", func(c *Config) { c.Limits.MaxTags = 1; c.Tags = []string{"default", "b"} }, "limits.max_tags"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tc.path {
				t.Fatalf("path = %q, want %q", verr.Path, tc.path)
			}
		})
	}
}

func TestLoadFromPath_BadSyncInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "sync_interval: soon\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "sync_interval" {
		t.Fatalf("expected sync_interval error, got %v", err)
	}
	if verr.Source.Line != 1 {
		t.Fatalf("expected source line 1, got %+v", verr.Source)
	}
}

func TestLoadFromPath_IncludesMergeInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "conf.d", "10-gaps.yaml"), "gap_size: 4\nscreen_padding:\n  top: 10\n")
	writeFile(t, filepath.Join(dir, "conf.d", "20-more.yml"), "gap_size: 6\n")
	writeFile(t, filepath.Join(dir, "conf.d", "ignored.txt"), "gap_size: 100\n")
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include: conf.d\nscreen_padding:\n  bottom: 20\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.GapSize != 6 {
		t.Fatalf("expected later include to win, got gap_size=%d", cfg.GapSize)
	}
	if cfg.ScreenPadding.Top != 10 || cfg.ScreenPadding.Bottom != 20 {
		t.Fatalf("expected padding merged per key, got %+v", cfg.ScreenPadding)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 files, got %v", res.Files)
	}

	_, src, err := Explain(res, "gap_size")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if !strings.HasSuffix(src.File, "20-more.yml") {
		t.Fatalf("expected gap_size from 20-more.yml, got %+v", src)
	}
}

func TestLoadFromPath_MainFileOverridesInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "base.yaml"), "gap_size: 4\n")
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include: [base.yaml]\ngap_size: 12\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.GapSize != 12 {
		t.Fatalf("expected gap_size 12, got %d", res.Config.GapSize)
	}
}

func TestLoadFromPath_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "include: b.yaml\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "include: a.yaml\n")

	_, err := LoadFromPath(filepath.Join(dir, "a.yaml"))
	if err == nil || !strings.Contains(err.Error(), "include cycle detected") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestLoadFromPath_MissingInclude(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "include: nowhere.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), `include "nowhere.yaml"`) {
		t.Fatalf("expected include error, got %v", err)
	}
}

func TestExplain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "frame:\n  default_algorithm: max\npresets:\n  mine: \"(clients grid:0)\"\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "frame.default_algorithm")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "max" || src.Kind != SourceFile || src.Line != 2 {
		t.Fatalf("unexpected explain result: %v %+v", val, src)
	}

	_, src, err = Explain(res, "presets.grid")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceBuiltin {
		t.Fatalf("expected builtin source, got %+v", src)
	}

	_, src, err = Explain(res, "presets.mine")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceFile {
		t.Fatalf("expected file source, got %+v", src)
	}

	val, src, err = Explain(res, "gap_size")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 0 || src.Kind != SourceDefault {
		t.Fatalf("unexpected default explain: %v %+v", val, src)
	}

	if _, _, err := Explain(res, "gap_size.nested"); err == nil {
		t.Fatal("expected error for nested scalar path")
	}
	if _, _, err := Explain(res, "hotkey"); err == nil {
		t.Fatal("expected error for unknown path")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GapSize = 3
	data, err := cfg.YAML()
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, string(data))
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("reload printed config: %v", err)
	}
	if res.Config.GapSize != 3 || res.Config.SyncInterval != cfg.SyncInterval {
		t.Fatalf("printed config did not round trip: %+v", res.Config)
	}
}
