package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vialsa/backend/internal/domain/entregas"
)

// InMemoryMovimientosCache is a process-local catalog cache. Suitable for
// single-instance deployments and testing; instances do not share state.
type InMemoryMovimientosCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]inMemoryEntry
}

type inMemoryEntry struct {
	catalogo  entregas.MovimientosDisponibles
	expiresAt time.Time
}

// NewInMemoryMovimientosCache creates an in-memory catalog cache
func NewInMemoryMovimientosCache(ttl time.Duration) *InMemoryMovimientosCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &InMemoryMovimientosCache{
		ttl:     ttl,
		entries: make(map[string]inMemoryEntry),
	}
}

// Get returns the cached catalog, or (nil, nil) on a miss or expired entry
func (c *InMemoryMovimientosCache) Get(ctx context.Context, sedeID uuid.UUID, fecha time.Time) (*entregas.MovimientosDisponibles, error) {
	c.mu.RLock()
	entry, ok := c.entries[movimientosKey(sedeID, fecha)]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	catalogo := entry.catalogo
	return &catalogo, nil
}

// Set stores the catalog with the configured TTL
func (c *InMemoryMovimientosCache) Set(ctx context.Context, sedeID uuid.UUID, fecha time.Time, catalogo entregas.MovimientosDisponibles) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[movimientosKey(sedeID, fecha)] = inMemoryEntry{
		catalogo:  catalogo,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// Invalidate removes the cached catalog for a sede and day
func (c *InMemoryMovimientosCache) Invalidate(ctx context.Context, sedeID uuid.UUID, fecha time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, movimientosKey(sedeID, fecha))
	return nil
}
