package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/frametile/internal/ldl"
	"github.com/1broseidon/frametile/internal/workspace"
)

// readTimeout bounds how long a client may take to send its request.
const readTimeout = 5 * time.Second

// Tiler applies the registry to the window system after a change.
type Tiler interface {
	Apply() error
}

// ServerOptions wires the server to the daemon.
type ServerOptions struct {
	SocketPath string
	Manager    *workspace.Manager
	Tiler      Tiler
	// Reload re-reads the configuration; RELOAD fails when it is nil.
	Reload func() error
	Logger *log.Logger
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	manager      *workspace.Manager
	tiler        Tiler
	reload       func() error
	logger       *log.Logger
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
	conns        map[net.Conn]struct{}
	wg           sync.WaitGroup
}

// NewServer creates a new IPC server
func NewServer(opts ServerOptions) (*Server, error) {
	if opts.Manager == nil {
		return nil, errors.New("ipc server needs a manager")
	}
	if opts.SocketPath == "" {
		return nil, errors.New("ipc server needs a socket path")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Remove a stale socket from a previous run
	os.Remove(opts.SocketPath)

	return &Server{
		socketPath: opts.SocketPath,
		manager:    opts.Manager,
		tiler:      opts.Tiler,
		reload:     opts.Reload,
		logger:     logger.WithPrefix("ipc"),
		startTime:  time.Now(),
		conns:      make(map[net.Conn]struct{}),
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			closing := s.shuttingDown
			s.shutdownMu.Unlock()
			if closing {
				return
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}

		conn.SetReadDeadline(time.Now().Add(readTimeout))
		if !s.track(conn) {
			conn.Close()
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(conn)
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) track(conn net.Conn) bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	if s.shuttingDown {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	delete(s.conns, conn)
}

// handleConnection serves one request per connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	data, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("read failed", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	s.logger.Debug("request", "command", req.Command)

	switch req.Command {
	case CommandLoad:
		return s.handleLoad(req.Payload)
	case CommandDump:
		return s.handleDump(req.Payload)
	case CommandListTags:
		return ok(TagsData{Tags: s.manager.Tags()})
	case CommandAddTag:
		return s.handleAddTag(req.Payload)
	case CommandFocusTag:
		return s.handleFocusTag(req.Payload)
	case CommandListWindows:
		return ok(WindowsData{Windows: s.manager.Windows()})
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleLoad(payload json.RawMessage) *Response {
	var p LoadPayload
	if err := decodePayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}

	res, err := s.manager.LoadText(p.Tag, p.Layout)
	if err != nil {
		var syn *ldl.SyntaxError
		if errors.As(err, &syn) {
			return NewSyntaxErrorResponse(syn)
		}
		return NewErrorResponse(err.Error())
	}

	for _, w := range res.Warnings {
		s.logger.Warn(w, "tag", res.Tag)
	}
	s.logger.Info("layout loaded", "tag", res.Tag, "brought", len(res.Brought), "orphans", len(res.Orphans))
	s.retile()

	data := LoadData{Tag: res.Tag, Warnings: res.Warnings}
	for _, id := range res.Brought {
		data.Brought = append(data.Brought, uint32(id))
	}
	return ok(data)
}

func (s *Server) handleDump(payload json.RawMessage) *Response {
	var p TagPayload
	if err := decodePayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	tag := p.Tag
	if tag == "" {
		tag = s.manager.FocusedTag()
	}
	text, err := s.manager.Dump(tag)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return ok(DumpData{Tag: tag, Layout: text})
}

func (s *Server) handleAddTag(payload json.RawMessage) *Response {
	var p TagPayload
	if err := decodePayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	if err := s.manager.AddTag(p.Tag); err != nil {
		return NewErrorResponse(err.Error())
	}
	s.logger.Info("tag added", "tag", p.Tag)
	return ok(nil)
}

func (s *Server) handleFocusTag(payload json.RawMessage) *Response {
	var p TagPayload
	if err := decodePayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	if err := s.manager.FocusTag(p.Tag); err != nil {
		return NewErrorResponse(err.Error())
	}
	s.retile()
	return ok(nil)
}

func (s *Server) handleGetStatus() *Response {
	return ok(StatusData{
		FocusedTag:    s.manager.FocusedTag(),
		TagCount:      len(s.manager.Tags()),
		WindowCount:   len(s.manager.Windows()),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		DaemonRunning: true,
	})
}

func (s *Server) handleReload() *Response {
	if s.reload == nil {
		return NewErrorResponse("reload is not supported")
	}
	if err := s.reload(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	s.logger.Info("config reloaded")
	return ok(nil)
}

func (s *Server) retile() {
	if s.tiler == nil {
		return
	}
	if err := s.tiler.Apply(); err != nil {
		s.logger.Warn("retile failed", "error", err)
	}
}

func (s *Server) sendError(conn net.Conn, errMsg string) {
	data, _ := NewErrorResponse(errMsg).Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop closes the listener, waits for in-flight requests and removes the
// socket. Connections still waiting for a request are cut off.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	for conn := range s.conns {
		conn.SetReadDeadline(time.Now())
	}
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}

func ok(data any) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func decodePayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
