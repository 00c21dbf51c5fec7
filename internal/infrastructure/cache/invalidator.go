package cache

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// InvalidationChannel es el canal Pub/Sub por el que viajan las claves invalidadas.
const InvalidationChannel = "bizops:cache:invalidate"

// Invalidator escucha las invalidaciones publicadas por otras instancias y borra
// la clave del L1 local.
type Invalidator struct {
	local  Cache
	client *redis.Client
	log    zerolog.Logger
	mu     sync.Mutex
	cancel context.CancelFunc
	closed bool
}

var _ Publisher = (*Invalidator)(nil)

// NewInvalidator crea el invalidador sobre el L1 local.
func NewInvalidator(local Cache, client *redis.Client, log zerolog.Logger) *Invalidator {
	return &Invalidator{local: local, client: client, log: log.With().Str("component", "cache_invalidator").Logger()}
}

// Start bloquea escuchando el canal hasta que se cancele ctx o se llame Close.
func (ci *Invalidator) Start(ctx context.Context) {
	subCtx, cancel := context.WithCancel(ctx)
	ci.mu.Lock()
	if ci.closed {
		ci.mu.Unlock()
		cancel()
		return
	}
	ci.cancel = cancel
	ci.mu.Unlock()

	pubsub := ci.client.Subscribe(subCtx, InvalidationChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-subCtx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := ci.local.Delete(subCtx, msg.Payload); err != nil {
				ci.log.Warn().Err(err).Str("key", msg.Payload).Msg("no se pudo invalidar la clave local")
			}
		}
	}
}

// PublishInvalidation avisa a todas las instancias (incluida esta) que la clave cambió.
func (ci *Invalidator) PublishInvalidation(ctx context.Context, key string) error {
	return ci.client.Publish(ctx, InvalidationChannel, key).Err()
}

// Close detiene la escucha.
func (ci *Invalidator) Close() error {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	if ci.closed {
		return nil
	}
	ci.closed = true
	if ci.cancel != nil {
		ci.cancel()
	}
	return nil
}
