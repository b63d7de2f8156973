package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/anthonynsimon/bild/transform"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/webptools/webp-frame-mcp/internal/codec"
	"github.com/webptools/webp-frame-mcp/internal/frame"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "frame_open", "frame_copy_pixels").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// Destination buffers allocated on behalf of the remote host are capped so a
// hostile stride/height pair cannot exhaust memory before validation runs.
const maxDestBytes = 1 << 28 // 256 MiB

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response whose code reflects
// the codec error taxonomy (see errorCode).
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, errorCode(err), "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "frame_open":
		return s.handleFrameOpen(args)
	case "frame_info":
		return s.handleFrameInfo(args)
	case "frame_copy_pixels":
		return s.handleFrameCopyPixels(args)
	case "frame_preview":
		return s.handleFramePreview(args)
	case "frame_sample_color":
		return s.handleFrameSampleColor(args)
	case "frame_close":
		return s.handleFrameClose(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// errorCode maps the codec and frame error taxonomy to JSON-RPC error codes.
// Unclassified errors fall through to -32000 (generic tool failure).
func errorCode(err error) int {
	switch {
	case errors.Is(err, codec.ErrBadImage):
		return -32001
	case errors.Is(err, codec.ErrInvalidDimensions):
		return -32002
	case errors.Is(err, codec.ErrOutOfMemory):
		return -32003
	case errors.Is(err, codec.ErrInvalidRegion):
		return -32004
	case errors.Is(err, codec.ErrInsufficientBuffer):
		return -32005
	case errors.Is(err, frame.ErrUnsupportedOperation):
		return -32006
	case errors.Is(err, codec.ErrInvalidArgument):
		return -32602
	default:
		return -32000
	}
}

// === Frame Lifecycle Handlers ===

type frameOpenArgs struct {
	// DataBase64 is the compressed bitstream, base64-encoded. Takes
	// precedence over Path when both are set.
	DataBase64 string `json:"data_base64,omitempty"`

	// Path is a file to read the bitstream from.
	Path string `json:"path,omitempty"`
}

// FrameOpenResult describes a freshly opened frame.
type FrameOpenResult struct {
	Handle      string `json:"handle"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	PixelFormat string `json:"pixel_format"`
}

func (s *Server) handleFrameOpen(args json.RawMessage) (interface{}, error) {
	var a frameOpenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var data []byte
	switch {
	case a.DataBase64 != "":
		var err error
		data, err = base64.StdEncoding.DecodeString(a.DataBase64)
		if err != nil {
			return nil, fmt.Errorf("invalid data_base64: %w", err)
		}
	case a.Path != "":
		var err error
		data, err = os.ReadFile(a.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read bitstream: %w", err)
		}
	default:
		return nil, fmt.Errorf("frame_open: %w: data_base64 or path required", codec.ErrInvalidArgument)
	}

	f, err := frame.Open(data)
	if err != nil {
		return nil, err
	}

	w, h := f.Size()
	return &FrameOpenResult{
		Handle:      s.cache.Put(f),
		Width:       w,
		Height:      h,
		PixelFormat: f.PixelFormat(),
	}, nil
}

type frameHandleArgs struct {
	Handle string `json:"handle"`
}

func (s *Server) lookup(handle string) (frame.Frame, error) {
	f, ok := s.cache.Get(handle)
	if !ok {
		return nil, fmt.Errorf("unknown frame handle: %q", handle)
	}
	return f, nil
}

// FrameInfoResult reports everything a host can query about a frame.
type FrameInfoResult struct {
	Handle        string   `json:"handle"`
	Width         int      `json:"width"`
	Height        int      `json:"height"`
	PixelFormat   string   `json:"pixel_format"`
	DpiX          float64  `json:"dpi_x"`
	DpiY          float64  `json:"dpi_y"`
	Capabilities  []string `json:"capabilities"`
	Palette       string   `json:"palette"`
	Metadata      string   `json:"metadata"`
	Thumbnail     string   `json:"thumbnail"`
	ColorContexts int      `json:"color_contexts"`
}

func (s *Server) handleFrameInfo(args json.RawMessage) (interface{}, error) {
	var a frameHandleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := s.lookup(a.Handle)
	if err != nil {
		return nil, err
	}

	var caps []string
	for _, c := range []frame.Capability{frame.CapObject, frame.CapFrameDecode, frame.CapBitmapSource} {
		if f.Supports(c) {
			caps = append(caps, c.String())
		}
	}

	w, h := f.Size()
	dpiX, dpiY := f.Resolution()
	contexts, _ := f.ColorContexts()

	return &FrameInfoResult{
		Handle:        a.Handle,
		Width:         w,
		Height:        h,
		PixelFormat:   f.PixelFormat(),
		DpiX:          dpiX,
		DpiY:          dpiY,
		Capabilities:  caps,
		Palette:       "unavailable",
		Metadata:      "unsupported",
		Thumbnail:     "none",
		ColorContexts: len(contexts),
	}, nil
}

// === Pixel Access Handlers ===

type frameCopyPixelsArgs struct {
	Handle string `json:"handle"`

	// Region is the sub-rectangle to copy. Omitted means the full frame.
	Region *codec.Region `json:"region,omitempty"`

	// DestStride is the destination row stride in bytes. Omitted or zero
	// means the tight stride region.width*4.
	DestStride int `json:"dest_stride,omitempty"`
}

// FrameCopyPixelsResult carries the copied rows back to the host.
type FrameCopyPixelsResult struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	DestStride   int    `json:"dest_stride"`
	BytesWritten int    `json:"bytes_written"`
	PixelsBase64 string `json:"pixels_base64"`
}

func (s *Server) handleFrameCopyPixels(args json.RawMessage) (interface{}, error) {
	var a frameCopyPixelsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := s.lookup(a.Handle)
	if err != nil {
		return nil, err
	}

	region := a.Region
	if region == nil {
		w, h := f.Size()
		region = &codec.Region{X: 0, Y: 0, Width: w, Height: h}
	}

	destStride := a.DestStride
	if destStride == 0 {
		if region.Width > maxDestBytes/codec.BytesPerPixel {
			return nil, codec.ErrInvalidRegion
		}
		// Tight stride; floor at one pixel so empty regions keep a
		// usable stride.
		destStride = region.Width * codec.BytesPerPixel
		if destStride == 0 {
			destStride = codec.BytesPerPixel
		}
	}

	// The copy routine validates against len(dest), so the buffer must be
	// sized up front; refuse hostile sizes instead of allocating them.
	if destStride < 0 || region.Height < 0 {
		return nil, codec.ErrInvalidRegion
	}
	need := int64(destStride) * int64(region.Height)
	if need > maxDestBytes {
		return nil, codec.ErrInsufficientBuffer
	}

	// make never returns nil here, so an empty request still passes the
	// copy routine's nil-destination check.
	dest := make([]byte, need)
	if err := f.CopyPixels(region, destStride, dest); err != nil {
		return nil, err
	}

	return &FrameCopyPixelsResult{
		Width:        region.Width,
		Height:       region.Height,
		DestStride:   destStride,
		BytesWritten: len(dest),
		PixelsBase64: base64.StdEncoding.EncodeToString(dest),
	}, nil
}

type framePreviewArgs struct {
	Handle string        `json:"handle"`
	Region *codec.Region `json:"region,omitempty"`
	Scale  float64       `json:"scale,omitempty"`
}

// FramePreviewResult contains a region rendered as an encoded image.
type FramePreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleFramePreview(args json.RawMessage) (interface{}, error) {
	var a framePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	f, err := s.lookup(a.Handle)
	if err != nil {
		return nil, err
	}

	region := a.Region
	if region == nil {
		w, h := f.Size()
		region = &codec.Region{X: 0, Y: 0, Width: w, Height: h}
	}
	if region.Width <= 0 || region.Height <= 0 {
		return nil, fmt.Errorf("%w: preview region must be non-empty", codec.ErrInvalidRegion)
	}

	out := image.NewNRGBA(image.Rect(0, 0, region.Width, region.Height))
	if err := f.CopyPixels(region, out.Stride, out.Pix); err != nil {
		return nil, err
	}

	var preview image.Image = out
	if a.Scale != 1.0 && a.Scale > 0 {
		newWidth := int(float64(region.Width) * a.Scale)
		newHeight := int(float64(region.Height) * a.Scale)
		preview = transform.Resize(out, newWidth, newHeight, transform.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, preview); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	b := preview.Bounds()
	return &FramePreviewResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// === Color Operation Handlers ===

type frameSampleColorArgs struct {
	Handle string `json:"handle"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// handleFrameSampleColor reads one pixel through the same strided copy path
// the host uses, so an out-of-bounds coordinate fails with the copy
// routine's own region error.
func (s *Server) handleFrameSampleColor(args json.RawMessage) (interface{}, error) {
	var a frameSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := s.lookup(a.Handle)
	if err != nil {
		return nil, err
	}

	var px [codec.BytesPerPixel]byte
	region := codec.Region{X: a.X, Y: a.Y, Width: 1, Height: 1}
	if err := f.CopyPixels(&region, codec.BytesPerPixel, px[:]); err != nil {
		return nil, err
	}

	r, g, b, alpha := px[0], px[1], px[2], px[3]
	c := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
	h, sat, l := c.Hsl()

	return &ColorResult{
		Hex:  fmt.Sprintf("#%02X%02X%02X", r, g, b),
		RGB:  RGBColor{R: r, G: g, B: b},
		RGBA: RGBAColor{R: r, G: g, B: b, A: alpha},
		HSL: HSLColor{
			H: int(h + 0.5),
			S: int(sat*100 + 0.5),
			L: int(l*100 + 0.5),
		},
	}, nil
}

// === Lifecycle Handlers ===

// FrameCloseResult acknowledges a released handle.
type FrameCloseResult struct {
	Handle string `json:"handle"`
	Closed bool   `json:"closed"`
}

func (s *Server) handleFrameClose(args json.RawMessage) (interface{}, error) {
	var a frameHandleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if _, err := s.lookup(a.Handle); err != nil {
		return nil, err
	}
	s.cache.Evict(a.Handle)

	return &FrameCloseResult{Handle: a.Handle, Closed: true}, nil
}
