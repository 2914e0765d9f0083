package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/frametile/internal/ipc"
	"github.com/1broseidon/frametile/internal/ldl"
	"github.com/1broseidon/frametile/internal/workspace"
)

// managerDaemon answers tool calls straight from a Manager.
type managerDaemon struct {
	m *workspace.Manager
}

func (d managerDaemon) Load(tag, layout string) (*ipc.LoadData, error) {
	res, err := d.m.LoadText(tag, layout)
	if err != nil {
		return nil, err
	}
	data := &ipc.LoadData{Tag: res.Tag, Warnings: res.Warnings}
	for _, id := range res.Brought {
		data.Brought = append(data.Brought, uint32(id))
	}
	return data, nil
}

func (d managerDaemon) Dump(tag string) (*ipc.DumpData, error) {
	if tag == "" {
		tag = d.m.FocusedTag()
	}
	text, err := d.m.Dump(tag)
	if err != nil {
		return nil, err
	}
	return &ipc.DumpData{Tag: tag, Layout: text}, nil
}

func (d managerDaemon) ListTags() (*ipc.TagsData, error) {
	return &ipc.TagsData{Tags: d.m.Tags()}, nil
}

func (d managerDaemon) ListWindows() (*ipc.WindowsData, error) {
	return &ipc.WindowsData{Windows: d.m.Windows()}, nil
}

func newTestServer(t *testing.T) (*Server, *workspace.Manager) {
	t.Helper()
	m, err := workspace.NewManager(workspace.DefaultOptions(), "a", "b")
	require.NoError(t, err)
	require.NoError(t, m.AddWindow(0x10))
	require.NoError(t, m.AddWindow(0x11))
	return NewServer(managerDaemon{m: m}, nil), m
}

func TestLoadLayoutTool(t *testing.T) {
	s, m := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleLoadLayout(ctx, nil, LoadLayoutInput{Tag: "b", Layout: "(clients max:0 0x11 0x77)"})
	require.NoError(t, err)
	assert.Equal(t, "b", out.Tag)
	assert.Equal(t, []string{"0x11"}, out.Brought)
	assert.Equal(t, []string{"Warning: Unknown window IDs: 0x77"}, out.Warnings)

	tag, ok := m.TagOf(0x11)
	require.True(t, ok)
	assert.Equal(t, "b", tag)
}

func TestLoadLayoutToolSyntaxError(t *testing.T) {
	s, _ := newTestServer(t)

	_, _, err := s.handleLoadLayout(context.Background(), nil, LoadLayoutInput{Layout: "(clients max:0 0x10"})
	var syn *ldl.SyntaxError
	require.True(t, errors.As(err, &syn))
	assert.Equal(t, "Syntax error at 19: expected \")\" but reached end of input", err.Error())
}

func TestLoadLayoutToolRequiresLayout(t *testing.T) {
	s, _ := newTestServer(t)
	_, _, err := s.handleLoadLayout(context.Background(), nil, LoadLayoutInput{})
	assert.Error(t, err)
}

func TestDumpAndListTools(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	_, dump, err := s.handleDumpLayout(ctx, nil, DumpLayoutInput{})
	require.NoError(t, err)
	assert.Equal(t, "a", dump.Tag)
	assert.Equal(t, "(clients vertical:0 0x10 0x11)", dump.Layout)

	_, tags, err := s.handleListTags(ctx, nil, ListTagsInput{})
	require.NoError(t, err)
	require.Len(t, tags.Tags, 2)
	assert.True(t, tags.Tags[0].Focused)
	assert.Equal(t, 2, tags.Tags[0].ClientCount)

	_, wins, err := s.handleListWindows(ctx, nil, ListWindowsInput{})
	require.NoError(t, err)
	require.Len(t, wins.Windows, 2)
	assert.Equal(t, "0x10", wins.Windows[0].ID)
	assert.True(t, wins.Windows[0].Focused)
}
