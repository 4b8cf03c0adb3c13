// Package server implements the MCP (Model Context Protocol) server for the
// alt text accessibility tools.
//
// This package provides a JSON-RPC 2.0 server that exposes alt text
// generation, analysis, and validation through the MCP protocol. It's
// designed to work with Claude and other MCP-compatible clients.
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
// Empty input lines are skipped and malformed JSON is logged to stderr and
// dropped without a response; recognized requests with invalid parameters
// get a structured error response instead. Requests without an id are
// treated as notifications and never answered.
//
// # Available Tools
//
//   - generate_alt_text: Produce brief/moderate/detailed alt text options
//     for an image, with an accessibility analysis
//   - analyze_image_context: Accessibility analysis plus an evaluation of
//     the image's current alt text
//   - validate_alt_text_quality: Deterministic length-based quality scoring
//     of existing alt text
//
// # Error Handling
//
// Protocol errors are returned as JSON-RPC error responses:
//   - code -32601: unknown method
//   - code -32602: malformed tools/call params or missing required arguments
//   - code -32000: unknown tool name
//
// Faults while executing a known tool (bad image input, vision backend
// failure) are reported inside the tool's own result payload with
// success:false, so clients always receive a well-formed result for a
// known tool. No request is ever fatal to the server; the loop ends only
// on end of input or an interrupt.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(generator)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
