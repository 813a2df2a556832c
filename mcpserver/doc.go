// Package mcpserver exposes a registry snapshot as an MCP tool server.
//
// Every tool of the current snapshot is listed under the name
// "<category>:<id>" with its input schema, and premium and path in _meta.
// tools/call accepts that name or the bare tool id, runs the tool and
// returns its result as text content. Premium tools are refused unless
// the server is configured with premium access.
//
// Transports:
//
//   - [ServeStdio]: newline-delimited JSON-RPC over stdin and stdout
//   - [ServeHTTP]: one JSON-RPC request per POST
//   - [ServeSSE]: one JSON-RPC request per POST, answered as an SSE event
//
// The snapshot is fetched from the [Source] on every request, so a caller
// that refreshes its registry is picked up without restarting the server.
package mcpserver
