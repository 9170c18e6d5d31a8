package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got)
}

func TestFromContext_NotFound(t *testing.T) {
	got := FromContext(context.Background())
	require.NotNil(t, got)
	// Must not panic
	got.Info("message on nop logger")
}

func TestWithRequestID(t *testing.T) {
	logger := zap.NewNop()
	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.NotNil(t, enriched)
	assert.Same(t, enriched, FromContext(ctx))
}

func TestWithSedeID(t *testing.T) {
	logger := zap.NewNop()
	ctx, enriched := WithSedeID(context.Background(), logger, "sede-norte")

	assert.Equal(t, "sede-norte", GetSedeID(ctx))
	assert.NotNil(t, enriched)
}

func TestGetRequestID_NotFound(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestGetSedeID_NotFound(t *testing.T) {
	assert.Empty(t, GetSedeID(context.Background()))
}

func TestContextChaining(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	ctx, logger = WithRequestID(ctx, logger, "req-9")
	ctx, _ = WithSedeID(ctx, logger, "sede-centro")

	assert.Equal(t, "req-9", GetRequestID(ctx))
	assert.Equal(t, "sede-centro", GetSedeID(ctx))
}
