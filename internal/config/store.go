package config

import (
	"fmt"
	"strings"
	"sync"

	"toolctl/pkg/logging"
)

// Store holds the active configuration and broadcasts environment changes.
// It implements the endpoint-resolution surface the protocol clients
// consume, so a changed environment is picked up on the very next call.
type Store struct {
	mu       sync.RWMutex
	cfg      Config
	handlers map[int]func()
	nextID   int
}

// NewStore wraps a loaded configuration.
func NewStore(cfg Config) *Store {
	return &Store{
		cfg:      cfg,
		handlers: make(map[int]func()),
	}
}

// Config returns a copy of the active configuration.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := s.cfg
	cfg.Services = append([]ServiceDefinition(nil), s.cfg.Services...)
	return cfg
}

// Services returns the configured service definitions.
func (s *Store) Services() []ServiceDefinition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ServiceDefinition(nil), s.cfg.Services...)
}

// Environment returns the active environment name.
func (s *Store) Environment() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Environment
}

func (s *Store) service(name string) (ServiceDefinition, bool) {
	for _, svc := range s.cfg.Services {
		if svc.Name == name {
			return svc, true
		}
	}
	return ServiceDefinition{}, false
}

// MCPPort returns the configured MCP port for a service.
func (s *Store) MCPPort(name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.service(name)
	if !ok {
		return 0, fmt.Errorf("service %q is not configured", name)
	}
	return svc.MCPPort, nil
}

// EndpointURL returns the base URL for a service, without the /mcp suffix.
func (s *Store) EndpointURL(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.service(name)
	if !ok {
		return "", fmt.Errorf("service %q is not configured", name)
	}
	host := svc.Host
	if host == "" {
		host = DefaultHost
	}
	url := fmt.Sprintf("http://%s:%d", host, svc.MCPPort)
	if svc.BasePath != "" {
		url += "/" + strings.Trim(svc.BasePath, "/")
	}
	return url, nil
}

// OnEnvironmentChange registers a handler fired whenever the environment
// target changes. The returned function unsubscribes it.
func (s *Store) OnEnvironmentChange(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.handlers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.handlers, id)
		s.mu.Unlock()
	}
}

// SetEnvironment switches the active environment target and notifies
// subscribers when it actually changed.
func (s *Store) SetEnvironment(name string) {
	s.mu.Lock()
	if s.cfg.Environment == name {
		s.mu.Unlock()
		return
	}
	previous := s.cfg.Environment
	s.cfg.Environment = name
	s.mu.Unlock()

	logging.Info("Config", "environment changed: %s -> %s", previous, name)
	s.notify()
}

// Apply replaces the whole configuration, notifying subscribers when the
// environment target differs from the previous one.
func (s *Store) Apply(cfg Config) {
	s.mu.Lock()
	changed := s.cfg.Environment != cfg.Environment
	s.cfg = cfg
	s.mu.Unlock()

	if changed {
		logging.Info("Config", "environment changed to %s", cfg.Environment)
		s.notify()
	}
}

// notify fires handlers outside the lock; a handler may unsubscribe or
// re-read the store.
func (s *Store) notify() {
	s.mu.RLock()
	handlers := make([]func(), 0, len(s.handlers))
	for _, fn := range s.handlers {
		handlers = append(handlers, fn)
	}
	s.mu.RUnlock()

	for _, fn := range handlers {
		fn()
	}
}
