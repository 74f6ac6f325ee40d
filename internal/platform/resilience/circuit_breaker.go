package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker guards an unreliable dependency: it opens after a run of
// consecutive failures and lets a limited number of probes through after the
// cooldown elapses.
type CircuitBreaker struct {
	mu sync.Mutex

	threshold  int
	cooldown   time.Duration
	probeLimit int

	state        CircuitState
	failureRun   int
	openedAt     time.Time
	probesActive int
	probesOK     int
	now          func() time.Time
}

func NewCircuitBreaker(threshold int, cooldown time.Duration, probeLimit int) *CircuitBreaker {
	if threshold < 1 {
		threshold = 1
	}
	if cooldown <= 0 {
		cooldown = 15 * time.Second
	}
	if probeLimit < 1 {
		probeLimit = 1
	}

	return &CircuitBreaker{
		threshold:  threshold,
		cooldown:   cooldown,
		probeLimit: probeLimit,
		state:      CircuitStateClosed,
		now:        time.Now,
	}
}

func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.cooldown {
			return ErrCircuitOpen
		}
		b.state = CircuitStateHalfOpen
		b.probesActive = 0
		b.probesOK = 0
	}

	if b.state == CircuitStateHalfOpen {
		if b.probesActive >= b.probeLimit {
			return ErrCircuitOpen
		}
		b.probesActive++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failureRun = 0
	case CircuitStateHalfOpen:
		if b.probesActive > 0 {
			b.probesActive--
		}
		b.probesOK++
		if b.probesOK >= b.probeLimit && b.probesActive == 0 {
			b.reset()
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failureRun++
		if b.failureRun >= b.threshold {
			b.trip()
		}
	case CircuitStateHalfOpen:
		if b.probesActive > 0 {
			b.probesActive--
		}
		b.trip()
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cooldown {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) reset() {
	b.state = CircuitStateClosed
	b.failureRun = 0
	b.probesActive = 0
	b.probesOK = 0
	b.openedAt = time.Time{}
}

func (b *CircuitBreaker) trip() {
	b.state = CircuitStateOpen
	b.openedAt = b.now()
	b.probesActive = 0
	b.probesOK = 0
}
