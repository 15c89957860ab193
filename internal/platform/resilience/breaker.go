package resilience

import (
	"errors"
	"sync"
)

var ErrStreakExhausted = errors.New("consecutive failure streak exhausted")

// Breaker tracks consecutive failures against a dependency and trips once
// the streak reaches the configured threshold. A single success resets it.
type Breaker struct {
	mu sync.Mutex

	threshold int
	streak    int
	tripped   bool
}

func NewBreaker(threshold int) *Breaker {
	if threshold < 1 {
		threshold = 1
	}
	return &Breaker{threshold: threshold}
}

// Record feeds one operation outcome into the breaker. It returns
// ErrStreakExhausted when the failure streak reaches the threshold.
func (b *Breaker) Record(err error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.streak = 0
		b.tripped = false
		return nil
	}

	b.streak++
	if b.streak >= b.threshold {
		b.tripped = true
		return ErrStreakExhausted
	}
	return nil
}

func (b *Breaker) Tripped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tripped
}

func (b *Breaker) Streak() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.streak
}
