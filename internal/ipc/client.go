package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/frametile/internal/ldl"
	"github.com/1broseidon/frametile/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default socket.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientWithSocket(socketPath)
}

// NewClientWithSocket creates a client for an explicit socket path.
func NewClientWithSocket(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response. ERROR responses
// are returned as errors; syntax errors come back as *ldl.SyntaxError.
func (c *Client) sendRequest(command CommandType, payload any) (*Response, error) {
	req := &Request{Command: command}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		req.Payload = raw
	}

	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	respData, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		if resp.Syntax != nil {
			return nil, &ldl.SyntaxError{Offset: resp.Syntax.Offset, Detail: resp.Syntax.Detail}
		}
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}
	return &resp, nil
}

func (c *Client) call(command CommandType, payload, out any) error {
	resp, err := c.sendRequest(command, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", command, err)
	}
	return nil
}

// Load sends a layout to the daemon. An empty tag means the focused tag.
func (c *Client) Load(tag, layout string) (*LoadData, error) {
	var data LoadData
	if err := c.call(CommandLoad, LoadPayload{Tag: tag, Layout: layout}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Dump returns the canonical layout text of a tag.
func (c *Client) Dump(tag string) (*DumpData, error) {
	var data DumpData
	if err := c.call(CommandDump, TagPayload{Tag: tag}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ListTags returns all tags in creation order.
func (c *Client) ListTags() (*TagsData, error) {
	var data TagsData
	if err := c.call(CommandListTags, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// AddTag creates an empty tag.
func (c *Client) AddTag(name string) error {
	return c.call(CommandAddTag, TagPayload{Tag: name}, nil)
}

// FocusTag switches the focused tag.
func (c *Client) FocusTag(name string) error {
	return c.call(CommandFocusTag, TagPayload{Tag: name}, nil)
}

// ListWindows returns all managed windows.
func (c *Client) ListWindows() (*WindowsData, error) {
	var data WindowsData
	if err := c.call(CommandListWindows, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	var data StatusData
	if err := c.call(CommandGetStatus, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Reload asks the daemon to re-read its configuration.
func (c *Client) Reload() error {
	return c.call(CommandReload, nil, nil)
}

// Ping checks whether the daemon answers.
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
