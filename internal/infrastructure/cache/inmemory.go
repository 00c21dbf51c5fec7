package cache

import (
	"context"
	"sync"
	"time"
)

// InMemory es la caché por defecto cuando no hay Redis, y el L1 de Tiered.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
	stop    chan struct{}
	closed  bool
}

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewInMemory crea la caché y arranca la limpieza periódica de entradas vencidas.
func NewInMemory(evictEvery time.Duration) *InMemory {
	if evictEvery <= 0 {
		evictEvery = 30 * time.Second
	}
	c := &InMemory{
		entries: make(map[string]memEntry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go c.evictLoop(evictEvery)
	return c
}

func (c *InMemory) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || e.expired(c.now()) {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(e.value))
	copy(cp, e.value)
	return cp, nil
}

func (c *InMemory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	c.entries[key] = memEntry{value: cp, expiresAt: expiresAt}
	return nil
}

func (c *InMemory) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Len devuelve cuántas entradas hay guardadas (vencidas o no).
func (c *InMemory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *InMemory) Ping(_ context.Context) error { return nil }

func (c *InMemory) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.entries = map[string]memEntry{}
	close(c.stop)
	return nil
}

func (c *InMemory) evict() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
		}
	}
}

func (c *InMemory) evictLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evict()
		}
	}
}
