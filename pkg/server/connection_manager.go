package server

import (
	"context"
	"sync"
	"time"

	"github.com/onskyline/science-interview/internal/config"
)

// ConnectionManager keeps one container alive across warm function invocations
type ConnectionManager struct {
	container   *Container
	lastUsed    time.Time
	mu          sync.RWMutex
	initialized bool
	config      *config.Config
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = &ConnectionManager{}
	})
	return globalConnectionManager
}

// Initialize builds the container once. Later calls are no-ops until Cleanup.
func (cm *ConnectionManager) Initialize(ctx context.Context, cfg *config.Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	_, err := cm.initLocked(ctx, cfg)
	return err
}

// GetContainer returns the service container, initializing if necessary.
// A returned container is never nil when err is nil.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cfg := cm.config
	if cfg == nil {
		var err error
		cfg, err = config.GetOptimizedConfig()
		if err != nil {
			return nil, err
		}
	}
	return cm.initLocked(ctx, cfg)
}

// initLocked must be called with cm.mu held
func (cm *ConnectionManager) initLocked(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cm.initialized && cm.container != nil {
		cm.lastUsed = time.Now()
		return cm.container, nil
	}

	container, err := NewContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cm.config = cfg
	cm.container = container
	cm.lastUsed = time.Now()
	cm.initialized = true
	return container, nil
}

// IsHealthy reports whether a container exists and was used recently
func (cm *ConnectionManager) IsHealthy() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if !cm.initialized || cm.container == nil {
		return false
	}

	// Check if connection is stale (older than 5 minutes)
	return time.Since(cm.lastUsed) < 5*time.Minute
}

// Cleanup closes the container; the next GetContainer rebuilds it
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		if err := cm.container.Close(); err != nil {
			return err
		}
		cm.container = nil
	}

	cm.initialized = false
	return nil
}
