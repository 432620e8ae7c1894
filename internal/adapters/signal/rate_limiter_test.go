package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionRateLimiter_BlocksOverLimit(t *testing.T) {
	req := require.New(t)
	rl := NewSessionRateLimiter(2, time.Second)

	req.True(rl.Allow("A"))
	req.True(rl.Allow("A"))
	req.False(rl.Allow("A"))

	// Other sessions track independently.
	req.True(rl.Allow("B"))
}

func TestSessionRateLimiter_WindowSlides(t *testing.T) {
	req := require.New(t)
	rl := NewSessionRateLimiter(1, 30*time.Millisecond)

	req.True(rl.Allow("A"))
	req.False(rl.Allow("A"))

	time.Sleep(40 * time.Millisecond)
	req.True(rl.Allow("A"))
}

func TestSessionRateLimiter_Forget(t *testing.T) {
	req := require.New(t)
	rl := NewSessionRateLimiter(1, time.Hour)

	req.True(rl.Allow("A"))
	req.False(rl.Allow("A"))

	rl.Forget("A")
	req.True(rl.Allow("A"))
}

func TestSessionRateLimiter_ZeroLimitDisables(t *testing.T) {
	rl := NewSessionRateLimiter(0, time.Second)
	for i := 0; i < 10; i++ {
		require.True(t, rl.Allow("A"))
	}
}
