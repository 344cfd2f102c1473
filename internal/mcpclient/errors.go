package mcpclient

import (
	"encoding/json"
	"fmt"
)

// NetworkError reports a transport-level failure: connection refused, DNS
// resolution, or the per-call deadline expiring before the server answered.
// It is never derived from an HTTP status code, so the session token is left
// untouched and the expiry retry does not fire.
type NetworkError struct {
	Service string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Service, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// InitializationError reports a failed handshake: a non-2xx response to the
// initialize request, or a response body that could not be decoded.
type InitializationError struct {
	Service string
	Status  int
	Err     error
}

func (e *InitializationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: initialize returned HTTP %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s: initialize failed: %v", e.Service, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// ProtocolError is a JSON-RPC error returned by the server during the
// handshake.
type ProtocolError struct {
	Service string
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: initialize rejected: %s", e.Service, e.Message)
}

// MalformedFrameError reports an SSE body without exactly one "data: " line.
type MalformedFrameError struct {
	Reason string
}

func (e *MalformedFrameError) Error() string {
	return "malformed SSE frame: " + e.Reason
}

// SessionExpiredError reports that the server rejected a call as
// session-invalid (HTTP 400 or 404) and the single permitted re-handshake
// retry was also rejected.
type SessionExpiredError struct {
	Service string
	Status  int
}

func (e *SessionExpiredError) Error() string {
	return fmt.Sprintf("%s: session expired and retry rejected with HTTP %d", e.Service, e.Status)
}

// CallError reports a non-2xx response to a tool call, other than the 400/404
// pair that marks session expiry.
type CallError struct {
	Service string
	Status  int
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: call returned HTTP %d", e.Service, e.Status)
}

// ToolError is a JSON-RPC error returned for a tool call. Data carries the
// server-provided detail verbatim.
type ToolError struct {
	Code    int
	Message string
	Data    json.RawMessage
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool call failed: %s (code %d)", e.Message, e.Code)
}
