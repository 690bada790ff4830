package infra

import (
	"context"
	"errors"
	"sync"
	"time"

	"biowearth/internal/model"
	"biowearth/internal/store"

	"github.com/rs/zerolog/log"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Closed → Open → Half-Open breaker guarding writes to the document store.
//
// States:
//   - Closed:    normal operation, writes pass through
//   - Open:      every write fails immediately with ErrCircuitOpen
//   - Half-Open: writes are let through as probes until SuccessThreshold succeed

// CBState represents the current circuit breaker state.
type CBState int

const (
	CBClosed   CBState = iota // normal, requests flow
	CBOpen                    // tripped, fast-fail all requests
	CBHalfOpen                // probing
)

// String returns a human-readable state name (for health endpoints / logs).
func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned when Execute is called while the CB is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig holds tunable parameters.
type CircuitBreakerConfig struct {
	FailureThreshold int           // consecutive failures to trip open (default: 5)
	SuccessThreshold int           // consecutive successes in half-open to close (default: 2)
	OpenTimeout      time.Duration // how long to stay open before probing (default: 30s)
	// IsFailure decides which errors count against the breaker. Nil counts every error.
	IsFailure func(error) bool
}

// DefaultCBConfig ignores store.ErrNotFound: a missing document is a caller
// error, not an unhealthy store.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      30 * time.Second,
		IsFailure:        func(err error) bool { return !errors.Is(err, store.ErrNotFound) },
	}
}

// CircuitBreaker implements the pattern with thread-safe state transitions.
type CircuitBreaker struct {
	mu               sync.Mutex
	state            CBState
	failureCount     int
	successCount     int
	lastFailureTime  time.Time
	failureThreshold int
	successThreshold int
	openTimeout      time.Duration
	isFailure        func(error) bool
	now              func() time.Time
}

// NewCircuitBreaker creates a CB in Closed state.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = func(error) bool { return true }
	}
	return &CircuitBreaker{
		state:            CBClosed,
		failureThreshold: cfg.FailureThreshold,
		successThreshold: cfg.SuccessThreshold,
		openTimeout:      cfg.OpenTimeout,
		isFailure:        cfg.IsFailure,
		now:              time.Now,
	}
}

// State returns the current CB state (safe for concurrent reads).
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	// Auto-transition open → half-open if timeout elapsed
	if cb.state == CBOpen && cb.now().Sub(cb.lastFailureTime) >= cb.openTimeout {
		cb.state = CBHalfOpen
		cb.successCount = 0
	}
	return cb.state
}

// Execute runs fn through the circuit breaker.
// Returns ErrCircuitOpen immediately if the CB is open.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if cb.State() == CBOpen {
		return ErrCircuitOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil && cb.isFailure(err) {
		cb.onFailure()
		return err
	}
	cb.onSuccess()
	return err
}

// onFailure records a failure (must be called under lock).
func (cb *CircuitBreaker) onFailure() {
	cb.failureCount++
	cb.lastFailureTime = cb.now()

	switch cb.state {
	case CBClosed:
		if cb.failureCount >= cb.failureThreshold {
			cb.state = CBOpen
			cb.successCount = 0
			log.Warn().Int("failures", cb.failureCount).Msg("circuit breaker: open")
		}
	case CBHalfOpen:
		// Probe failed, back to open
		cb.state = CBOpen
		cb.failureCount = 0
	}
}

// onSuccess records a success (must be called under lock).
func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case CBClosed:
		cb.failureCount = 0
	case CBHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.successThreshold {
			cb.state = CBClosed
			cb.failureCount = 0
			cb.successCount = 0
			log.Info().Msg("circuit breaker: closed")
		}
	}
}

// ── Guarded store ────────────────────────────────────────────────────────────

// GuardedAdapter sends every write of an adapter through a circuit breaker.
// Subscriptions pass straight through.
type GuardedAdapter struct {
	inner store.Adapter
	cb    *CircuitBreaker
}

func NewGuardedAdapter(inner store.Adapter, cb *CircuitBreaker) *GuardedAdapter {
	return &GuardedAdapter{inner: inner, cb: cb}
}

// Breaker exposes the breaker for health reporting.
func (g *GuardedAdapter) Breaker() *CircuitBreaker { return g.cb }

func (g *GuardedAdapter) Subscribe(ctx context.Context, coll model.Collection, fn store.Listener) (store.Unsubscribe, error) {
	return g.inner.Subscribe(ctx, coll, fn)
}

func (g *GuardedAdapter) Create(ctx context.Context, coll model.Collection, fields store.Fields) (string, error) {
	var id string
	err := g.cb.Execute(func() error {
		var err error
		id, err = g.inner.Create(ctx, coll, fields)
		return err
	})
	return id, err
}

func (g *GuardedAdapter) Update(ctx context.Context, coll model.Collection, id string, fields store.Fields) error {
	return g.cb.Execute(func() error { return g.inner.Update(ctx, coll, id, fields) })
}

func (g *GuardedAdapter) Delete(ctx context.Context, coll model.Collection, id string) error {
	return g.cb.Execute(func() error { return g.inner.Delete(ctx, coll, id) })
}

func (g *GuardedAdapter) SetKeyed(ctx context.Context, coll model.Collection, key string, fields store.Fields) error {
	return g.cb.Execute(func() error { return g.inner.SetKeyed(ctx, coll, key, fields) })
}
