package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	want := []string{
		"frame_open",
		"frame_info",
		"frame_copy_pixels",
		"frame_preview",
		"frame_sample_color",
		"frame_close",
	}
	if len(tools) != len(want) {
		t.Fatalf("tool count: got %d, want %d", len(tools), len(want))
	}

	byName := make(map[string]Tool, len(tools))
	for _, tool := range tools {
		byName[tool.Name] = tool
	}
	for _, name := range want {
		tool, ok := byName[name]
		if !ok {
			t.Errorf("missing tool %q", name)
			continue
		}
		if tool.Description == "" {
			t.Errorf("tool %q has no description", name)
		}
		if tool.InputSchema["type"] != "object" {
			t.Errorf("tool %q schema type: got %v, want object", name, tool.InputSchema["type"])
		}
	}
}

func TestGetToolDefinitions_HandleRequired(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "frame_open" {
			// The only tool without a handle argument.
			continue
		}
		t.Run(tool.Name, func(t *testing.T) {
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatalf("required missing from schema")
			}
			found := false
			for _, r := range required {
				if r == "handle" {
					found = true
				}
			}
			if !found {
				t.Errorf("handle not required: %v", required)
			}
		})
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"}

	resp := s.handleToolsList(req)
	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("handleToolsList returned error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result type: got %T", resp.Result)
	}
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatalf("tools type: got %T", result["tools"])
	}
	if len(tools) != len(GetToolDefinitions()) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(GetToolDefinitions()))
	}
}
