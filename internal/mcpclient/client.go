package mcpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"toolctl/pkg/logging"
)

const (
	protocolVersion    = "2024-11-05"
	endpointPath       = "/mcp"
	defaultCallTimeout = 30 * time.Second
)

// ConfigBinding resolves where a service currently lives. The registry
// passes the config store, so an environment switch moves the client to the
// new target without rebuilding it.
type ConfigBinding interface {
	// EndpointURL returns the service base URL, e.g. "http://localhost:8090".
	// The /mcp path is appended by the client.
	EndpointURL(service string) (string, error)
	// MCPPort returns the configured MCP port for the service.
	MCPPort(service string) (int, error)
}

// Implementation identifies this client in the initialize handshake.
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type initializeParams struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ClientInfo      Implementation `json:"clientInfo"`
}

type toolCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolDescriptor is one entry of a tools/list result.
type ToolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// Client drives one backend tool service over the streamable HTTP MCP
// transport. It owns the service's session: handshake, token tagging, and
// the single bounded retry when the server reports the session gone.
type Client struct {
	service    string
	binding    ConfigBinding
	info       Implementation
	httpClient *http.Client
	timeout    time.Duration

	session *SessionState

	// initMu guards inflight: concurrent callers that need a handshake
	// share the one already running instead of racing their own.
	initMu   sync.Mutex
	inflight *handshake
}

// handshake is the shared state of one in-flight initialize exchange.
type handshake struct {
	done chan struct{}
	err  error
}

// Option configures a Client at construction.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout sets the per-call deadline applied to every exchange.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithClientInfo sets the name/version advertised in the handshake.
func WithClientInfo(info Implementation) Option {
	return func(c *Client) { c.info = info }
}

// NewClient builds the client for one service. Clients are constructed once
// at startup and live for the whole process.
func NewClient(service string, binding ConfigBinding, opts ...Option) *Client {
	c := &Client{
		service:    service,
		binding:    binding,
		info:       Implementation{Name: "toolctl", Version: "dev"},
		httpClient: http.DefaultClient,
		timeout:    defaultCallTimeout,
		session:    NewSessionState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Service returns the logical service name this client is bound to.
func (c *Client) Service() string { return c.service }

// Port reports the configured MCP port for this client's service.
func (c *Client) Port() (int, error) {
	return c.binding.MCPPort(c.service)
}

// SessionToken returns the current session token, or "" when no session
// exists. Exposed for the console's connection status display.
func (c *Client) SessionToken() string {
	return c.session.Token()
}

// ResetSession invalidates the session and restarts the request-id
// sequence. The next call re-runs the handshake.
func (c *Client) ResetSession() {
	c.session.Reset()
	logging.Debug("MCPClient", "%s: session reset", c.service)
}

// Initialize performs the MCP handshake: it sends the initialize request,
// installs the token from the mcp-session-id response header, and fires the
// initialized notification. Concurrent callers await the handshake already
// in flight instead of issuing a second one.
func (c *Client) Initialize(ctx context.Context) error {
	return c.initialize(ctx, true)
}

// ensureInitialized handshakes only when no session exists. Unlike
// Initialize it also short-circuits when a racing caller finished the
// handshake between our token check and here.
func (c *Client) ensureInitialized(ctx context.Context) error {
	return c.initialize(ctx, false)
}

func (c *Client) initialize(ctx context.Context, force bool) error {
	c.initMu.Lock()
	if h := c.inflight; h != nil {
		c.initMu.Unlock()
		select {
		case <-h.done:
			return h.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if !force && c.session.Token() != "" {
		c.initMu.Unlock()
		return nil
	}
	h := &handshake{done: make(chan struct{})}
	c.inflight = h
	c.initMu.Unlock()

	h.err = c.doInitialize(ctx)

	c.initMu.Lock()
	c.inflight = nil
	c.initMu.Unlock()
	close(h.done)
	return h.err
}

func (c *Client) doInitialize(ctx context.Context) error {
	epoch := c.session.Epoch()
	id := c.session.AllocateRequestID()
	payload, err := EncodeRequest("initialize", initializeParams{
		ProtocolVersion: protocolVersion,
		Capabilities:    map[string]any{},
		ClientInfo:      c.info,
	}, &id)
	if err != nil {
		return &InitializationError{Service: c.service, Err: err}
	}

	status, header, body, err := c.post(ctx, payload, "")
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return &InitializationError{Service: c.service, Status: status}
	}

	if token := header.Get("Mcp-Session-Id"); token != "" {
		if !c.session.SetTokenAt(token, epoch) {
			// The session was reset while this handshake was in flight; the
			// response belongs to a dead generation.
			logging.Debug("MCPClient", "%s: discarding handshake response from a reset session", c.service)
			return nil
		}
	}

	env, err := DecodeSSEBody(body)
	if err != nil {
		return &InitializationError{Service: c.service, Err: err}
	}
	if env.Error != nil {
		return &ProtocolError{Service: c.service, Message: env.Error.Message}
	}

	// Fire-and-forget: a dropped initialized notification never fails the
	// handshake.
	if err := c.Notify(ctx, "notifications/initialized", map[string]any{}); err != nil {
		logging.Debug("MCPClient", "%s: initialized notification dropped: %v", c.service, err)
	}
	logging.Debug("MCPClient", "%s: session established", c.service)
	return nil
}

// Notify sends a JSON-RPC notification. The response body is read and
// discarded; callers can only observe transport errors.
func (c *Client) Notify(ctx context.Context, method string, params any) error {
	payload, err := EncodeRequest(method, params, nil)
	if err != nil {
		return fmt.Errorf("encoding %s notification: %w", method, err)
	}
	_, _, _, err = c.post(ctx, payload, "")
	return err
}

// CallOption adjusts a single call.
type CallOption func(*callOptions)

type callOptions struct {
	bearer string
}

// WithBearerToken forwards an Authorization: Bearer header with the call.
// The token is sent verbatim and never logged.
func WithBearerToken(token string) CallOption {
	return func(o *callOptions) { o.bearer = token }
}

// CallTool invokes a named tool and returns the raw JSON-RPC result without
// transformation. Arguments are opaque to the client.
func (c *Client) CallTool(ctx context.Context, tool string, args map[string]any, opts ...CallOption) (json.RawMessage, error) {
	if args == nil {
		args = map[string]any{}
	}
	return c.invoke(ctx, "tools/call", toolCallParams{Name: tool, Arguments: args}, opts...)
}

// ListTools fetches the service's tool catalog.
func (c *Client) ListTools(ctx context.Context) ([]ToolDescriptor, error) {
	raw, err := c.invoke(ctx, "tools/list", map[string]any{})
	if err != nil {
		return nil, err
	}
	var result struct {
		Tools []ToolDescriptor `json:"tools"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%s: decoding tools/list result: %w", c.service, err)
	}
	return result.Tools, nil
}

// invoke runs one request/response exchange under the session policy: lazy
// handshake, token tagging, and at most one retry when the server rejects
// the session. The bound is a counted loop, not recursion, so a flapping
// server cannot drive unbounded re-handshakes.
func (c *Client) invoke(ctx context.Context, method string, params any, opts ...CallOption) (json.RawMessage, error) {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}

	const maxExpiryRetries = 1
	for attempt := 0; ; attempt++ {
		if c.session.Token() == "" {
			if err := c.ensureInitialized(ctx); err != nil {
				return nil, err
			}
		}

		id := c.session.AllocateRequestID()
		payload, err := EncodeRequest(method, params, &id)
		if err != nil {
			return nil, fmt.Errorf("encoding %s request: %w", method, err)
		}

		status, _, body, err := c.post(ctx, payload, co.bearer)
		if err != nil {
			return nil, err
		}
		if status < 200 || status >= 300 {
			if status == http.StatusBadRequest || status == http.StatusNotFound {
				if attempt < maxExpiryRetries {
					logging.Info("MCPClient", "%s: session rejected (HTTP %d), re-establishing", c.service, status)
					c.session.ClearToken()
					continue
				}
				return nil, &SessionExpiredError{Service: c.service, Status: status}
			}
			return nil, &CallError{Service: c.service, Status: status}
		}

		env, err := DecodeSSEBody(body)
		if err != nil {
			return nil, err
		}
		if env.Error != nil {
			return nil, &ToolError{Code: env.Error.Code, Message: env.Error.Message, Data: env.Error.Data}
		}
		return env.Result, nil
	}
}

// post sends one POST exchange against the service's /mcp endpoint under
// the per-call deadline and returns status, headers and the full body.
// Transport failures, including the deadline expiring, surface as
// NetworkError and leave the session untouched.
func (c *Client) post(ctx context.Context, payload []byte, bearer string) (int, http.Header, []byte, error) {
	base, err := c.binding.EndpointURL(c.service)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("resolving endpoint for %s: %w", c.service, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(base, "/")+endpointPath, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, nil, &NetworkError{Service: c.service, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Mcp-Session-Id", token)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, &NetworkError{Service: c.service, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, &NetworkError{Service: c.service, Err: err}
	}
	return resp.StatusCode, resp.Header, body, nil
}
