package mcpclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRequestWithID(t *testing.T) {
	id := int64(7)
	payload, err := EncodeRequest("tools/call", map[string]any{"name": "ping", "arguments": map[string]any{}}, &id)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"jsonrpc": "2.0",
		"id": 7,
		"method": "tools/call",
		"params": {"name": "ping", "arguments": {}}
	}`, string(payload))
}

func TestEncodeRequestNotificationOmitsID(t *testing.T) {
	payload, err := EncodeRequest("notifications/initialized", map[string]any{}, nil)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &decoded))
	_, hasID := decoded["id"]
	assert.False(t, hasID, "notifications must not serialize an id field")
	assert.JSONEq(t, `{"jsonrpc":"2.0","method":"notifications/initialized","params":{}}`, string(payload))
}

func TestDecodeSSEBodyResult(t *testing.T) {
	body := []byte("event: message\ndata: {\"jsonrpc\":\"2.0\",\"id\":3,\"result\":{\"ok\":true}}\n\n")

	env, err := DecodeSSEBody(body)
	require.NoError(t, err)
	assert.Equal(t, int64(3), env.ID)
	assert.Nil(t, env.Error)
	assert.JSONEq(t, `{"ok":true}`, string(env.Result))
}

func TestDecodeSSEBodyError(t *testing.T) {
	body := []byte("data: {\"jsonrpc\":\"2.0\",\"id\":4,\"error\":{\"code\":-32602,\"message\":\"invalid params\"}}\n")

	env, err := DecodeSSEBody(body)
	require.NoError(t, err)
	require.NotNil(t, env.Error)
	assert.Equal(t, -32602, env.Error.Code)
	assert.Equal(t, "invalid params", env.Error.Message)
}

func TestDecodeSSEBodyCRLF(t *testing.T) {
	body := []byte("event: message\r\ndata: {\"jsonrpc\":\"2.0\",\"id\":1,\"result\":{}}\r\n\r\n")

	env, err := DecodeSSEBody(body)
	require.NoError(t, err)
	assert.Equal(t, int64(1), env.ID)
}

func TestDecodeSSEBodyNoDataLine(t *testing.T) {
	_, err := DecodeSSEBody([]byte("event: message\n\n"))

	var frameErr *MalformedFrameError
	require.ErrorAs(t, err, &frameErr)
	assert.Contains(t, frameErr.Reason, "no data line")
}

func TestDecodeSSEBodyMultipleDataLines(t *testing.T) {
	body := []byte("data: {\"jsonrpc\":\"2.0\",\"id\":1,\"result\":{}}\ndata: {\"jsonrpc\":\"2.0\",\"id\":2,\"result\":{}}\n")

	_, err := DecodeSSEBody(body)

	var frameErr *MalformedFrameError
	require.ErrorAs(t, err, &frameErr)
	assert.Contains(t, frameErr.Reason, "multiple data lines")
}

func TestDecodeSSEBodyInvalidJSON(t *testing.T) {
	_, err := DecodeSSEBody([]byte("data: not-json\n"))

	var frameErr *MalformedFrameError
	require.ErrorAs(t, err, &frameErr)
	assert.Contains(t, frameErr.Reason, "not a JSON-RPC envelope")
}

func TestDecodeSSEBodyIgnoresOtherFields(t *testing.T) {
	body := []byte("event: message\nid: 42\nretry: 1000\ndata: {\"jsonrpc\":\"2.0\",\"id\":9,\"result\":{\"tools\":[]}}\n\n")

	env, err := DecodeSSEBody(body)
	require.NoError(t, err)
	assert.Equal(t, int64(9), env.ID)
	assert.JSONEq(t, `{"tools":[]}`, string(env.Result))
}
