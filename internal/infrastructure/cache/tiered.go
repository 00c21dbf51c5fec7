package cache

import (
	"context"
	"time"
)

// Publisher avisa a las demás instancias que una clave cambió.
type Publisher interface {
	PublishInvalidation(ctx context.Context, key string) error
}

// Tiered combina un L1 local y corto con un L2 compartido. Las lecturas prueban L1 y luego L2
// (repoblando L1); las escrituras van a ambos. Delete además publica la invalidación para
// que las otras instancias vacíen su L1.
type Tiered struct {
	l1    Cache
	l2    Cache
	l1TTL time.Duration
	pub   Publisher
}

// NewTiered crea la caché de dos niveles. l1TTL <= 0 usa 10s. pub puede ser nil.
func NewTiered(l1, l2 Cache, l1TTL time.Duration, pub Publisher) *Tiered {
	if l1TTL <= 0 {
		l1TTL = 10 * time.Second
	}
	return &Tiered{l1: l1, l2: l2, l1TTL: l1TTL, pub: pub}
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, error) {
	if val, err := t.l1.Get(ctx, key); err == nil {
		return val, nil
	}
	val, err := t.l2.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	_ = t.l1.Set(ctx, key, val, t.l1TTL)
	return val, nil
}

func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	l1TTL := t.l1TTL
	if ttl > 0 && ttl < l1TTL {
		l1TTL = ttl
	}
	_ = t.l1.Set(ctx, key, value, l1TTL)
	return t.l2.Set(ctx, key, value, ttl)
}

func (t *Tiered) Delete(ctx context.Context, key string) error {
	_ = t.l1.Delete(ctx, key)
	if err := t.l2.Delete(ctx, key); err != nil {
		return err
	}
	if t.pub != nil {
		return t.pub.PublishInvalidation(ctx, key)
	}
	return nil
}

func (t *Tiered) Ping(ctx context.Context) error {
	if err := t.l1.Ping(ctx); err != nil {
		return err
	}
	return t.l2.Ping(ctx)
}

func (t *Tiered) Close() error {
	_ = t.l1.Close()
	return t.l2.Close()
}
