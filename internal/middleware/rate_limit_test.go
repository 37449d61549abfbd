package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestKeyedLimiter_EvictsIdleKeys(t *testing.T) {
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	k := NewKeyedLimiter(rate.Limit(1), 1)
	k.now = func() time.Time { return now }

	assert.True(t, k.Allow("10.0.0.1"))
	assert.False(t, k.Allow("10.0.0.1"))
	assert.True(t, k.Allow("10.0.0.2"))
	assert.Equal(t, 2, k.Len())

	now = now.Add(limiterIdleTTL + time.Second)
	assert.True(t, k.Allow("10.0.0.3"))
	assert.Equal(t, 1, k.Len())
}
