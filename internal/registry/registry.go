// Package registry maps logical service names to their protocol clients
// and keeps every session consistent with the active environment.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"toolctl/internal/config"
	"toolctl/internal/mcpclient"
	"toolctl/pkg/logging"
)

// UnknownServiceError reports a lookup for a service name that was never
// registered. Nothing is constructed on this path.
type UnknownServiceError struct {
	Service string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("service %q is not registered", e.Service)
}

// ClientRegistry owns the singleton protocol client for each configured
// service. It is built once at startup and handed to consumers; there is no
// package-level instance.
type ClientRegistry struct {
	mu      sync.RWMutex
	clients map[string]*mcpclient.Client

	unsubscribe func()
}

// New builds one client per configured service and subscribes to the config
// store's environment-change signal: a change resets every session, so
// stale sessions tied to the previous backend target are discarded before
// the next call.
func New(store *config.Store, opts ...mcpclient.Option) *ClientRegistry {
	r := &ClientRegistry{
		clients: make(map[string]*mcpclient.Client),
	}
	for _, svc := range store.Services() {
		r.clients[svc.Name] = mcpclient.NewClient(svc.Name, store, opts...)
	}
	r.unsubscribe = store.OnEnvironmentChange(r.ResetAll)

	logging.Debug("Registry", "registered %d service clients", len(r.clients))
	return r
}

// GetClient returns the client for a service name. Clients exist only for
// names registered at construction.
func (r *ClientRegistry) GetClient(name string) (*mcpclient.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[name]
	if !ok {
		return nil, &UnknownServiceError{Service: name}
	}
	return client, nil
}

// Services returns the registered service names, sorted.
func (r *ClientRegistry) Services() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResetAll drops every managed session. The next call on each client
// re-runs its handshake.
func (r *ClientRegistry) ResetAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	logging.Info("Registry", "resetting %d service sessions", len(r.clients))
	for _, client := range r.clients {
		client.ResetSession()
	}
}

// Close detaches the registry from the config store's change signal.
func (r *ClientRegistry) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}
