// Package mcp exposes the daemon's layout commands as MCP tools over stdio.
package mcp

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/frametile/internal/ipc"
)

const (
	ServerName    = "frametile"
	ServerVersion = "0.1.0"
)

// Daemon is the part of the IPC client the tools use.
type Daemon interface {
	Load(tag, layout string) (*ipc.LoadData, error)
	Dump(tag string) (*ipc.DumpData, error)
	ListTags() (*ipc.TagsData, error)
	ListWindows() (*ipc.WindowsData, error)
}

var _ Daemon = (*ipc.Client)(nil)

// Server is the MCP server. Every tool forwards to the running daemon.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
	logger    *log.Logger
}

// NewServer creates a server backed by daemon. A nil logger discards output.
func NewServer(daemon Daemon, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		daemon: daemon,
		logger: logger.WithPrefix("mcp"),
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name: "load_layout",
		Description: "Load a layout into a tag. Frames the layout leaves out keep their current windows; " +
			"named window ids are brought from other tags. Unknown window ids are reported as warnings. " +
			"Syntax errors carry the character offset of the problem.",
	}, s.handleLoadLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "dump_layout",
		Description: "Return the canonical layout text of a tag. The result can be passed back to load_layout unchanged.",
	}, s.handleDumpLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_tags",
		Description: "List tags in order with their focus state, window count and frame count.",
	}, s.handleListTags)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List managed windows with the tag that holds each one.",
	}, s.handleListWindows)
}
