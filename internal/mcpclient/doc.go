// Package mcpclient implements the session-oriented MCP client used to
// drive backend tool services over the streamable HTTP transport.
//
// Each backend service is owned by exactly one Client. The client performs
// the stateful initialize handshake, tags every subsequent request with the
// server-issued session token, and transparently re-establishes the session
// once when the server reports it gone (HTTP 400/404 on a tool call).
//
// Responses arrive as single-shot Server-Sent Events bodies wrapping a
// JSON-RPC 2.0 envelope; the codec in this package handles that framing.
package mcpclient
