package resilience

import (
	"errors"
	"testing"
	"time"
)

var errDownstream = errors.New("downstream failed")

func failing() error { return errDownstream }
func succeeding() error { return nil }

func TestCircuitBreaker_Transitions(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Execute(failing, nil); !errors.Is(err, errDownstream) {
		t.Fatalf("expected downstream error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Execute(failing, nil)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	called := false
	err := b.Execute(func() error { called = true; return nil }, nil)
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected open circuit to short-circuit, err=%v called=%v", err, called)
	}

	now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}
	if err := b.Execute(succeeding, nil); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestCircuitBreaker_IgnoresNonFailures(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 1})
	clientErr := errors.New("bad token")

	for i := 0; i < 3; i++ {
		err := b.Execute(func() error { return clientErr }, func(err error) bool { return !errors.Is(err, clientErr) })
		if !errors.Is(err, clientErr) {
			t.Fatalf("expected client error, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected client errors to keep breaker closed, got %s", state)
	}
}

func TestCircuitBreaker_Disabled(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1})
	for i := 0; i < 3; i++ {
		if err := b.Execute(failing, nil); !errors.Is(err, errDownstream) {
			t.Fatalf("expected downstream error, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("disabled breaker must stay closed, got %s", state)
	}
}
