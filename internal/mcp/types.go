package mcp

// LoadLayoutInput is the input for the load_layout tool.
type LoadLayoutInput struct {
	Tag    string `json:"tag,omitempty" jsonschema:"Tag to load into (default: focused tag)"`
	Layout string `json:"layout" jsonschema:"required,Layout text, e.g. (split horizontal:0.5:0 (clients vertical:0 0x1) (clients max:0))"`
}

// LoadLayoutOutput is the output for the load_layout tool.
type LoadLayoutOutput struct {
	Tag      string   `json:"tag"`
	Warnings []string `json:"warnings,omitempty"`
	Brought  []string `json:"brought,omitempty"`
}

// DumpLayoutInput is the input for the dump_layout tool.
type DumpLayoutInput struct {
	Tag string `json:"tag,omitempty" jsonschema:"Tag to dump (default: focused tag)"`
}

// DumpLayoutOutput is the output for the dump_layout tool.
type DumpLayoutOutput struct {
	Tag    string `json:"tag"`
	Layout string `json:"layout"`
}

// ListTagsInput is the input for the list_tags tool.
type ListTagsInput struct{}

// TagInfo describes one tag.
type TagInfo struct {
	Name        string `json:"name"`
	Focused     bool   `json:"focused"`
	ClientCount int    `json:"client_count"`
	FrameCount  int    `json:"frame_count"`
}

// ListTagsOutput is the output for the list_tags tool.
type ListTagsOutput struct {
	Tags []TagInfo `json:"tags"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// WindowInfo locates one managed window.
type WindowInfo struct {
	ID      string `json:"id"`
	Tag     string `json:"tag"`
	Focused bool   `json:"focused"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}
