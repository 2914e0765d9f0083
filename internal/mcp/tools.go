package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/frametile/internal/frame"
)

func (s *Server) handleLoadLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args LoadLayoutInput) (*mcpsdk.CallToolResult, LoadLayoutOutput, error) {
	if args.Layout == "" {
		return nil, LoadLayoutOutput{}, fmt.Errorf("layout is required")
	}
	data, err := s.daemon.Load(args.Tag, args.Layout)
	if err != nil {
		s.logger.Debug("load_layout failed", "tag", args.Tag, "error", err)
		return nil, LoadLayoutOutput{}, err
	}

	out := LoadLayoutOutput{Tag: data.Tag, Warnings: data.Warnings}
	for _, id := range data.Brought {
		out.Brought = append(out.Brought, frame.WindowID(id).String())
	}
	s.logger.Info("load_layout", "tag", out.Tag, "warnings", len(out.Warnings))
	return nil, out, nil
}

func (s *Server) handleDumpLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args DumpLayoutInput) (*mcpsdk.CallToolResult, DumpLayoutOutput, error) {
	data, err := s.daemon.Dump(args.Tag)
	if err != nil {
		return nil, DumpLayoutOutput{}, err
	}
	return nil, DumpLayoutOutput{Tag: data.Tag, Layout: data.Layout}, nil
}

func (s *Server) handleListTags(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListTagsInput) (*mcpsdk.CallToolResult, ListTagsOutput, error) {
	data, err := s.daemon.ListTags()
	if err != nil {
		return nil, ListTagsOutput{}, err
	}
	out := ListTagsOutput{Tags: make([]TagInfo, 0, len(data.Tags))}
	for _, t := range data.Tags {
		out.Tags = append(out.Tags, TagInfo{
			Name:        t.Name,
			Focused:     t.Focused,
			ClientCount: t.ClientCount,
			FrameCount:  t.FrameCount,
		})
	}
	return nil, out, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.daemon.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	out := ListWindowsOutput{Windows: make([]WindowInfo, 0, len(data.Windows))}
	for _, w := range data.Windows {
		out.Windows = append(out.Windows, WindowInfo{ID: w.ID.String(), Tag: w.Tag, Focused: w.Focused})
	}
	return nil, out, nil
}
