// Package server implements the MCP (Model Context Protocol) server for the image transform engine.
//
// This package provides a JSON-RPC 2.0 server that exposes the operation
// catalogue to MCP-compatible clients. Images are loaded into a named store,
// transformed by name, and written back out.
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
// Store Operations:
//   - image_load: Read a file into the store under a name
//   - image_save: Write a stored image to a file
//   - image_info: Width, height and max value of a stored image
//   - image_list: Names of all stored images
//   - image_sample_pixel: Channel values of one pixel
//   - image_preview: Base64 PNG rendering, optionally resized
//
// Transform Operations (each reads "source" and writes "dest"):
//   - image_flip: horizontal or vertical mirror
//   - image_brighten: signed brightness change (maskable)
//   - image_greyscale: component/value/intensity/luma greyscale (maskable)
//   - image_filter: blur or sharpen (maskable)
//   - image_color_transform: greyscale or sepia matrix (maskable)
//   - image_downscale: bilinear shrink
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, which names the failed operation
//
// A failed transform never modifies the store.
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
