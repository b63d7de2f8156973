// Package server implements the MCP (Model Context Protocol) host shim for
// the WebP frame adapter.
//
// This package provides a JSON-RPC 2.0 server that exposes decoded image
// frames to an MCP-compatible host. The host supplies a compressed
// bitstream, the server decodes it once into an immutable frame, and
// subsequent tool calls pull rectangular pixel copies out of that frame.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - frame_open: Decode a bitstream and return a frame handle
//   - frame_info: Size, pixel format, resolution and capabilities
//   - frame_copy_pixels: Strided sub-rectangle copy, returned base64-encoded
//   - frame_preview: Region rendered as base64 PNG, optionally scaled
//   - frame_sample_color: Color of one pixel in hex/RGB/RGBA/HSL
//   - frame_close: Release a frame handle
//
// # Frame Cache
//
// Open frames live in an in-memory, handle-keyed cache. A frame is decoded
// exactly once at frame_open and is immutable afterwards; every later tool
// call reads the same decoded buffer. Handles persist until frame_close or
// server exit.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses. The codec
// error taxonomy maps to dedicated codes (see errorCode in handlers.go);
// everything else uses -32000. The server surfaces errors to the host
// verbatim and never retries on the host's behalf.
package server
