package mcpclient

import (
	"encoding/json"
	"strings"
)

const jsonrpcVersion = "2.0"

// Request is a JSON-RPC 2.0 request or notification envelope. A nil ID
// marks a notification: the field is omitted and no response is expected.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      *int64 `json:"id,omitempty"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 response envelope. Exactly one of Result and
// Error is present.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

// ResponseError is the error member of a JSON-RPC response.
type ResponseError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// EncodeRequest serializes a request envelope. Pass a nil id for a
// notification.
func EncodeRequest(method string, params any, id *int64) ([]byte, error) {
	return json.Marshal(Request{
		JSONRPC: jsonrpcVersion,
		ID:      id,
		Method:  method,
		Params:  params,
	})
}

const ssePrefix = "data: "

// DecodeSSEBody extracts the JSON-RPC response envelope from a single-shot
// SSE-framed HTTP body. The body must contain exactly one "data: " line;
// zero or several is a malformed frame. Multi-event bodies are rejected
// rather than silently truncated to the first event.
func DecodeSSEBody(body []byte) (*Response, error) {
	var payload string
	found := false
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.HasPrefix(line, ssePrefix) {
			continue
		}
		if found {
			return nil, &MalformedFrameError{Reason: "multiple data lines in one body"}
		}
		payload = strings.TrimPrefix(line, ssePrefix)
		found = true
	}
	if !found {
		return nil, &MalformedFrameError{Reason: "no data line"}
	}
	var resp Response
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, &MalformedFrameError{Reason: "data line is not a JSON-RPC envelope: " + err.Error()}
	}
	return &resp, nil
}
