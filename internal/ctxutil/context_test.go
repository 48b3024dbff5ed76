package ctxutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetUserID(ctx))
	assert.Empty(t, GetChatID(ctx))
	_, ok := GetRequestID(ctx)
	assert.False(t, ok)

	ctx = WithUserID(ctx, "U1")
	ctx = WithChatID(ctx, "C1")
	ctx = WithRequestID(ctx, "req-1")

	assert.Equal(t, "U1", GetUserID(ctx))
	assert.Equal(t, "C1", GetChatID(ctx))
	reqID, ok := GetRequestID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-1", reqID)
}

func TestPreserveTracingDetachesCancellation(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	parent = WithUserID(parent, "U1")
	parent = WithRequestID(parent, "req-1")
	cancel()

	detached := PreserveTracing(parent)
	require.NoError(t, detached.Err())
	assert.Equal(t, "U1", GetUserID(detached))
	reqID, _ := GetRequestID(detached)
	assert.Equal(t, "req-1", reqID)
}
