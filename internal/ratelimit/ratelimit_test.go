package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowConsumesBurst(t *testing.T) {
	l := New(3, 1)

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestTokensRefillOverTime(t *testing.T) {
	l := New(1, 100) // fast refill keeps the test quick

	require.True(t, l.Allow())
	require.False(t, l.Allow())

	time.Sleep(50 * time.Millisecond)
	assert.True(t, l.Allow())
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	l := New(1, 0.001) // practically never refills

	require.True(t, l.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitReturnsWhenTokenAvailable(t *testing.T) {
	l := New(1, 100)

	require.True(t, l.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, l.Wait(ctx))
}

func TestAvailableCapsAtBurst(t *testing.T) {
	l := New(2, 1000)

	time.Sleep(10 * time.Millisecond)
	assert.LessOrEqual(t, l.Available(), 2.0)
}
