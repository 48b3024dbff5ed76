package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chungli-bot/house-linebot-go/internal/config"
)

func TestOpContextBoundsOperations(t *testing.T) {
	ctx, cancel := opContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok, "request-path operations must carry a deadline")
	assert.WithinDuration(t, time.Now().Add(config.StoreRequest), deadline, time.Second)
}

func TestOpContextKeepsTighterCallerDeadline(t *testing.T) {
	parent, cancelParent := context.WithTimeout(context.Background(), time.Second)
	defer cancelParent()

	ctx, cancel := opContext(parent)
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
}
