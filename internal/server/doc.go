// Package server implements the MCP (Model Context Protocol) server for the
// thumbnail and screenshot tools.
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
// Thumbnails:
//   - thumbnail_create: Tone map an HDR file (.hdr, .exr) into an LDR thumbnail
//   - thumbnail_preview: Return a resized copy of an LDR image as base64 PNG
//   - image_info: Dimensions, format, size and average colour of an LDR image
//
// Screenshots:
//   - screenshot_capture: Capture a desktop rectangle to an image file
//   - capture_region_resolve: Show which monitor serves a rectangle
//   - monitors_list: Enumerate displays
//
// Pixel transforms:
//   - gamma_correct: Apply inverse gamma to an LDR image in place
//   - tone_map: Map one linear HDR value to an 8-bit level
//
// # Image Caching
//
// Decoded LDR images are cached by path. Entries are reloaded when the file
// changes on disk, and tools that write a file evict it.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.Deps{Config: cfg, Converter: conv, ...})
//	if err := srv.Run(); err != nil {
//	    log.Fatal().Err(err).Msg("server stopped")
//	}
package server
