package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/frametile/internal/config"
	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/ipc"
	"github.com/1broseidon/frametile/internal/platform"
	"github.com/1broseidon/frametile/internal/workspace"
)

type env struct {
	socket  string
	config  string
	manager *workspace.Manager
}

// startDaemon serves a registry with tags main and side; main holds 0x1..0x3.
func startDaemon(t *testing.T) *env {
	t.Helper()

	dir, err := os.MkdirTemp("", "ft")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	m, err := workspace.NewManager(workspace.DefaultOptions(), "main", "side")
	require.NoError(t, err)
	for _, id := range []frame.WindowID{0x1, 0x2, 0x3} {
		require.NoError(t, m.AddWindow(id))
	}

	socket := filepath.Join(dir, "s.sock")
	srv, err := ipc.NewServer(ipc.ServerOptions{SocketPath: socket, Manager: m})
	require.NoError(t, err)
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Stop)

	return &env{socket: socket, config: filepath.Join(dir, "missing.yaml"), manager: m}
}

func (e *env) run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	full := append([]string{"--socket", e.socket, "--config", e.config}, args...)
	code := run(context.Background(), full, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestLoadPrintsWarningsAndDumpRoundTrips(t *testing.T) {
	e := startDaemon(t)

	code, out, errOut := e.run("load", "side", "(clients max:0 0x2 0x99 0x98)")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "Warning: Unknown window IDs: 0x99, 0x98\n", out)
	assert.Equal(t, "side", mustTagOf(t, e.manager, 0x2))

	code, out, _ = e.run("dump", "side")
	require.Equal(t, 0, code)
	assert.Equal(t, "(clients max:0 0x2)\n", out)
}

func mustTagOf(t *testing.T, m *workspace.Manager, id frame.WindowID) string {
	t.Helper()
	tag, ok := m.TagOf(id)
	require.True(t, ok)
	return tag
}

func TestLoadSyntaxErrorExitsNonZero(t *testing.T) {
	e := startDaemon(t)
	before, err := e.manager.Dump("main")
	require.NoError(t, err)

	code, out, errOut := e.run("load", "(clients max:0 0x1")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Equal(t, "load: Syntax error at 18: expected \")\" but reached end of input\n", errOut)

	after, err := e.manager.Dump("main")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLoadCheckDoesNotTouchDaemon(t *testing.T) {
	e := startDaemon(t)

	code, _, errOut := e.run("load", "--check", "(split vertical:0.5:0 (clients max:0) (clients grid:0))")
	assert.Equal(t, 0, code, errOut)

	code, _, errOut = e.run("load", "--check", "(split vertical:0.95:0 (clients max:0) (clients grid:0))")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Syntax error at")

	dump, err := e.manager.Dump("main")
	require.NoError(t, err)
	assert.Equal(t, "(clients vertical:0 0x1 0x2 0x3)", dump)
}

func TestLoadPreset(t *testing.T) {
	e := startDaemon(t)

	code, _, errOut := e.run("load", "--preset", "columns", "side")
	require.Equal(t, 0, code, errOut)

	dump, err := e.manager.Dump("side")
	require.NoError(t, err)
	assert.Equal(t, "(split horizontal:0.5:0 (clients vertical:0) (clients vertical:0))", dump)

	code, _, errOut = e.run("load", "--preset", "nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown preset")
}

func TestLayoutRendersTree(t *testing.T) {
	e := startDaemon(t)

	code, out, errOut := e.run("layout")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "main")
	assert.Contains(t, out, "vertical: *0x1 0x2 0x3 [FOCUS]")
}

func TestTagCommands(t *testing.T) {
	e := startDaemon(t)

	code, _, _ := e.run("add", "third")
	require.Equal(t, 0, code)
	code, _, _ = e.run("use", "third")
	require.Equal(t, 0, code)
	assert.Equal(t, "third", e.manager.FocusedTag())

	code, out, _ := e.run("tags")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "* 2 third")

	code, out, _ = e.run("windows")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "0x1")
	assert.Contains(t, out, "main")

	code, out, _ = e.run("status")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "windows:     3")

	code, _, errOut := e.run("use", "nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "use: ")
}

func TestNoDaemon(t *testing.T) {
	e := &env{socket: filepath.Join(t.TempDir(), "none.sock"), config: filepath.Join(t.TempDir(), "c.yaml")}

	code, _, errOut := e.run("dump")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "dump: ")
}

func TestPresetList(t *testing.T) {
	e := &env{socket: "unused", config: filepath.Join(t.TempDir(), "c.yaml")}

	code, out, _ := e.run("preset")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "main-stack")
	assert.Contains(t, out, "(clients grid:0)")
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestConfigValidateAndExplain(t *testing.T) {
	path := writeConfig(t, "gap_size: 12\ntags: [web, code]\n")
	e := &env{socket: "unused", config: path}

	code, out, errOut := e.run("config", "validate")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "config: ok\n", out)

	code, out, _ = e.run("config", "explain", "gap_size")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "path: gap_size")
	assert.Contains(t, out, path+":1:")
	assert.Contains(t, out, "12")

	bad := &env{socket: "unused", config: writeConfig(t, "presets:\n  broken: \"(clients max:0\"\n")}
	code, _, errOut = bad.run("config", "validate")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "presets.broken")
}

func TestDaemonReloadAddsTagsAndRetiles(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tags = []string{"main"}
	cfg.DefaultTag = "main"

	fake := platform.NewFake(platform.Rect{Width: 800, Height: 600})
	fake.SetWindows(0x1, 0x2)

	d, err := newDaemonState(cfg, fake, log.New(io.Discard))
	require.NoError(t, err)
	require.NoError(t, d.manager.AddWindow(0x1))
	require.NoError(t, d.manager.AddWindow(0x2))

	next := config.DefaultConfig()
	next.Tags = []string{"main", "web"}
	next.DefaultTag = "main"
	next.GapSize = 20
	d.reloadConfig = func() (*config.Config, error) { return next, nil }

	require.NoError(t, d.reload())

	names := []string{}
	for _, tag := range d.manager.Tags() {
		names = append(names, tag.Name)
	}
	assert.Equal(t, []string{"main", "web"}, names)

	geom, _ := fake.Snapshot()
	require.Contains(t, geom, platform.WindowID(0x1))
	assert.Equal(t, platform.Rect{X: 10, Y: 10, Width: 780, Height: 280}, geom[0x1])
}

func TestDaemonReloadWithoutSource(t *testing.T) {
	d, err := newDaemonState(config.DefaultConfig(), platform.NewFake(platform.Rect{Width: 10, Height: 10}), log.New(io.Discard))
	require.NoError(t, err)
	assert.Error(t, d.reload())
}
