package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vialsa/backend/internal/domain/entregas"
)

func sampleCatalogo() entregas.MovimientosDisponibles {
	return entregas.MovimientosDisponibles{
		Ordenes: []entregas.Orden{
			{ID: uuid.New(), Numero: "ORD-0001", Total: decimal.NewFromInt(850000), Venta: true},
		},
	}
}

func TestInMemoryMovimientosCache(t *testing.T) {
	ctx := context.Background()
	sedeID := uuid.New()
	fecha := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	t.Run("miss returns nil without error", func(t *testing.T) {
		c := NewInMemoryMovimientosCache(time.Minute)

		got, err := c.Get(ctx, sedeID, fecha)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set then get round-trips the catalog", func(t *testing.T) {
		c := NewInMemoryMovimientosCache(time.Minute)
		catalogo := sampleCatalogo()

		require.NoError(t, c.Set(ctx, sedeID, fecha, catalogo))

		got, err := c.Get(ctx, sedeID, fecha)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got.Ordenes, 1)
		assert.Equal(t, "ORD-0001", got.Ordenes[0].Numero)
	})

	t.Run("expired entries are misses", func(t *testing.T) {
		c := NewInMemoryMovimientosCache(time.Nanosecond)

		require.NoError(t, c.Set(ctx, sedeID, fecha, sampleCatalogo()))
		time.Sleep(time.Millisecond)

		got, err := c.Get(ctx, sedeID, fecha)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalidate removes the entry", func(t *testing.T) {
		c := NewInMemoryMovimientosCache(time.Minute)

		require.NoError(t, c.Set(ctx, sedeID, fecha, sampleCatalogo()))
		require.NoError(t, c.Invalidate(ctx, sedeID, fecha))

		got, err := c.Get(ctx, sedeID, fecha)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("entries are scoped per sede and day", func(t *testing.T) {
		c := NewInMemoryMovimientosCache(time.Minute)
		otherSede := uuid.New()

		require.NoError(t, c.Set(ctx, sedeID, fecha, sampleCatalogo()))

		got, err := c.Get(ctx, otherSede, fecha)
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = c.Get(ctx, sedeID, fecha.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestMovimientosKey(t *testing.T) {
	sedeID := uuid.MustParse("f47ac10b-58cc-0372-8567-0e02b2c3d479")
	fecha := time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC)

	key := movimientosKey(sedeID, fecha)
	assert.Equal(t, "entregas:movimientos:f47ac10b-58cc-0372-8567-0e02b2c3d479:2026-08-31", key)
}
