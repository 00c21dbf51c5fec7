// Package cache guarda lecturas calientes (agendas públicas) en memoria, en Redis o en ambos niveles.
// Los valores son bytes; la codificación la decide quien llama.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound se devuelve cuando la clave no existe o venció.
var ErrNotFound = errors.New("cache: clave no encontrada")

// Cache es un almacén clave-valor con TTL, seguro para uso concurrente.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set guarda el valor; ttl <= 0 significa sin vencimiento.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete no falla si la clave no existe.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
