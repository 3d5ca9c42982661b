package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetLimiter_ReusesPerEndpointInstance(t *testing.T) {
	e := NewEndpointLimiter(DefaultConfig())

	a := e.GetLimiter("offers")
	b := e.GetLimiter("offers")
	c := e.GetLimiter("destinations")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestSetEndpointLimit_OverridesDefaults(t *testing.T) {
	e := NewEndpointLimiter(DefaultConfig())
	e.SetEndpointLimit("auth", 1, 1)

	limiter := e.GetLimiter("auth")
	assert.Equal(t, float64(1), float64(limiter.Limit()))
	assert.Equal(t, 1, limiter.Burst())
}

func TestWait_HonorsContextCancellation(t *testing.T) {
	e := NewEndpointLimiter(Config{RequestsPerSecond: 0.001, BurstSize: 1})

	// Drain the single burst token.
	assert.NoError(t, e.Wait(context.Background(), "offers"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, e.Wait(ctx, "offers"))
}
