package collyfetcher

import (
	"crypto/rand"
	"math"
	"math/big"
	"time"
)

// backoffPolicy produces jittered exponential delays between retries.
type backoffPolicy struct {
	baseDelay time.Duration
	maxDelay  time.Duration
}

func newBackoffPolicy(base, max time.Duration) *backoffPolicy {
	if base <= 0 {
		base = 250 * time.Millisecond
	}
	if max <= 0 {
		max = 5 * time.Second
	}
	return &backoffPolicy{baseDelay: base, maxDelay: max}
}

// wait returns the delay before the next attempt: half the capped
// exponential plus random jitter up to the other half.
func (p *backoffPolicy) wait(attempt int) time.Duration {
	delay := float64(p.baseDelay) * math.Pow(2, float64(attempt))
	if delay > float64(p.maxDelay) {
		delay = float64(p.maxDelay)
	}
	jitter := randomJitter(time.Duration(delay) / 2)
	return time.Duration(delay/2) + jitter
}

func randomJitter(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	bound := big.NewInt(int64(limit))
	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return limit / 2
	}
	return time.Duration(n.Int64())
}
