package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// regionSchema is the shared schema fragment for optional region arguments.
func regionSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Sub-rectangle of the frame in pixel coordinates. Omit for the full frame.",
		"properties": map[string]interface{}{
			"x": map[string]interface{}{
				"type":        "integer",
				"description": "Left edge X coordinate (0-based)",
			},
			"y": map[string]interface{}{
				"type":        "integer",
				"description": "Top edge Y coordinate (0-based)",
			},
			"width": map[string]interface{}{
				"type":        "integer",
				"description": "Region width in pixels",
			},
			"height": map[string]interface{}{
				"type":        "integer",
				"description": "Region height in pixels",
			},
		},
		"required": []string{"x", "y", "width", "height"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Frame Lifecycle
		{
			Name:        "frame_open",
			Description: "Decode a compressed image bitstream (WebP, PNG, JPEG or GIF) into an immutable frame and return its handle. The frame is decoded exactly once; all later tools read the same decoded pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"data_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded compressed bitstream. Takes precedence over path.",
					},
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to a bitstream file",
					},
				},
			},
		},
		{
			Name:        "frame_info",
			Description: "Report a frame's size, pixel format (always 32bppRGBA), fixed resolution, capability set and stub statuses (palette, metadata, thumbnail, color contexts).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"handle": map[string]interface{}{
						"type":        "string",
						"description": "Frame handle returned by frame_open",
					},
				},
				"required": []string{"handle"},
			},
		},

		// Pixel Access
		{
			Name:        "frame_copy_pixels",
			Description: "Copy an axis-aligned sub-rectangle of the frame into a strided destination buffer and return the raw RGBA bytes base64-encoded. The request is fully validated before any byte is copied.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"handle": map[string]interface{}{
						"type":        "string",
						"description": "Frame handle returned by frame_open",
					},
					"region": regionSchema(),
					"dest_stride": map[string]interface{}{
						"type":        "integer",
						"description": "Destination row stride in bytes. Default: region width * 4.",
					},
				},
				"required": []string{"handle"},
			},
		},
		{
			Name:        "frame_preview",
			Description: "Render a region of the frame as a base64-encoded PNG, optionally scaled. Use this to inspect decoded output visually.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"handle": map[string]interface{}{
						"type":        "string",
						"description": "Frame handle returned by frame_open",
					},
					"region": regionSchema(),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"handle"},
			},
		},

		// Color Operations
		{
			Name:        "frame_sample_color",
			Description: "Get the color of a single pixel in hex, RGB, RGBA and HSL formats.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"handle": map[string]interface{}{
						"type":        "string",
						"description": "Frame handle returned by frame_open",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				},
				"required": []string{"handle", "x", "y"},
			},
		},

		// Frame Lifecycle
		{
			Name:        "frame_close",
			Description: "Release a frame handle and free its decoded buffer.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"handle": map[string]interface{}{
						"type":        "string",
						"description": "Frame handle returned by frame_open",
					},
				},
				"required": []string{"handle"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
