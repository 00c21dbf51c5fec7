package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_SetGetDelete(t *testing.T) {
	c := NewInMemory(time.Hour)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	val, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(val))

	// La copia devuelta no altera lo guardado.
	val[0] = 'x'
	again, _ := c.Get(ctx, "k")
	assert.Equal(t, "v", string(again))

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, c.Delete(ctx, "no-existe"))
}

func TestInMemory_Vencimiento(t *testing.T) {
	c := NewInMemory(time.Hour)
	defer c.Close()
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "corta", []byte("v"), time.Second))
	require.NoError(t, c.Set(ctx, "eterna", []byte("v"), 0))

	now = now.Add(2 * time.Second)
	_, err := c.Get(ctx, "corta")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Get(ctx, "eterna")
	assert.NoError(t, err)

	c.evict()
	assert.Equal(t, 1, c.Len())
}

func TestInMemory_CerradaIgnoraEscrituras(t *testing.T) {
	c := NewInMemory(time.Hour)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), 0))
	_, err := c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

type recordingPublisher struct{ keys []string }

func (p *recordingPublisher) PublishInvalidation(_ context.Context, key string) error {
	p.keys = append(p.keys, key)
	return nil
}

type failingCache struct{ Cache }

func (failingCache) Delete(context.Context, string) error { return errors.New("l2 caído") }

func TestTiered_LeeDeL2YRepueblaL1(t *testing.T) {
	ctx := context.Background()
	l1, l2 := NewInMemory(time.Hour), NewInMemory(time.Hour)
	tc := NewTiered(l1, l2, time.Minute, nil)
	defer tc.Close()

	require.NoError(t, l2.Set(ctx, "k", []byte("v2"), 0))
	val, err := tc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(val))

	fromL1, err := l1.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(fromL1))

	_, err = tc.Get(ctx, "nada")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTiered_DeleteInvalidaAmbosYPublica(t *testing.T) {
	ctx := context.Background()
	l1, l2 := NewInMemory(time.Hour), NewInMemory(time.Hour)
	pub := &recordingPublisher{}
	tc := NewTiered(l1, l2, 0, pub)
	defer tc.Close()

	require.NoError(t, tc.Set(ctx, "calendar:h1", []byte("x"), time.Minute))
	require.NoError(t, tc.Delete(ctx, "calendar:h1"))

	_, err := l1.Get(ctx, "calendar:h1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l2.Get(ctx, "calendar:h1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{"calendar:h1"}, pub.keys)
}

func TestTiered_ErrorDeL2NoPublica(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	tc := NewTiered(NewInMemory(time.Hour), failingCache{NewInMemory(time.Hour)}, 0, pub)
	assert.Error(t, tc.Delete(ctx, "k"))
	assert.Empty(t, pub.keys)
}
