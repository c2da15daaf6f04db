// Package storage defines the common interface for storage backends and a
// small registry that tracks their lifecycle.
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/kart-io/logger"
)

// HealthChecker verifies that a storage backend is reachable.
type HealthChecker func() error

// Client is the base interface implemented by every storage client.
type Client interface {
	// Name returns the storage type identifier.
	Name() string

	// Ping checks connectivity to the backend.
	Ping(ctx context.Context) error

	// Close releases the client's resources.
	Close() error

	// Health returns a checker for monitoring endpoints.
	Health() HealthChecker
}

// Manager keeps the set of storage clients a server owns so health checks
// and shutdown handle them uniformly.
type Manager struct {
	mu      sync.RWMutex
	clients map[string]Client
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		clients: make(map[string]Client),
	}
}

// Register adds a client under its Name. Registering the same name twice
// returns an error rather than silently replacing the client.
func (m *Manager) Register(client Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := client.Name()
	if _, ok := m.clients[name]; ok {
		return fmt.Errorf("storage client %q already registered", name)
	}
	m.clients[name] = client
	return nil
}

// Get returns a registered client by name.
func (m *Manager) Get(name string) (Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.clients[name]
	return c, ok
}

// HealthCheck pings every registered client and returns the per-client
// results keyed by name. A nil value means healthy.
func (m *Manager) HealthCheck(ctx context.Context) map[string]error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make(map[string]error, len(m.clients))
	for name, client := range m.clients {
		results[name] = client.Ping(ctx)
	}
	return results
}

// CloseAll closes every registered client and logs failures instead of
// aborting, so one bad client does not leak the others.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, client := range m.clients {
		if err := client.Close(); err != nil {
			logger.Warnw("failed to close storage client", "name", name, "error", err.Error())
		}
		delete(m.clients, name)
	}
}
