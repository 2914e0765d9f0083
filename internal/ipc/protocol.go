// Package ipc is the JSON-line protocol between the frametile CLI and the
// daemon over a unix socket.
package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/frametile/internal/ldl"
	"github.com/1broseidon/frametile/internal/workspace"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandLoad        CommandType = "LOAD"
	CommandDump        CommandType = "DUMP"
	CommandListTags    CommandType = "LIST_TAGS"
	CommandAddTag      CommandType = "ADD_TAG"
	CommandFocusTag    CommandType = "FOCUS_TAG"
	CommandListWindows CommandType = "LIST_WINDOWS"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandReload      CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
	Syntax *SyntaxData     `json:"syntax,omitempty"`
}

// SyntaxData carries a layout syntax error across the socket.
type SyntaxData struct {
	Offset int    `json:"offset"`
	Detail string `json:"detail"`
}

// LoadPayload is the payload of LOAD. An empty tag means the focused tag.
type LoadPayload struct {
	Tag    string `json:"tag,omitempty"`
	Layout string `json:"layout"`
}

// LoadData is returned by LOAD.
type LoadData struct {
	Tag      string   `json:"tag"`
	Warnings []string `json:"warnings,omitempty"`
	Brought  []uint32 `json:"brought,omitempty"`
}

// TagPayload names a tag for DUMP, ADD_TAG and FOCUS_TAG.
type TagPayload struct {
	Tag string `json:"tag,omitempty"`
}

// DumpData is returned by DUMP.
type DumpData struct {
	Tag    string `json:"tag"`
	Layout string `json:"layout"`
}

// TagsData is returned by LIST_TAGS.
type TagsData struct {
	Tags []workspace.TagInfo `json:"tags"`
}

// WindowsData is returned by LIST_WINDOWS.
type WindowsData struct {
	Windows []workspace.WindowInfo `json:"windows"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	FocusedTag    string `json:"focused_tag"`
	TagCount      int    `json:"tag_count"`
	WindowCount   int    `json:"window_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	DaemonRunning bool   `json:"daemon_running"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data any) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// NewSyntaxErrorResponse reports a layout syntax error.
func NewSyntaxErrorResponse(err *ldl.SyntaxError) *Response {
	return &Response{
		Status: "ERROR",
		Error:  err.Error(),
		Syntax: &SyntaxData{Offset: err.Offset, Detail: err.Detail},
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
