package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
)

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	cb := NewCircuitBreaker("report store", 2, time.Minute, 1)
	ctx := context.Background()
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		if err := cb.Call(ctx, func() error { return boom }); !errors.Is(err, boom) {
			t.Fatalf("call %d: expected underlying error, got %v", i, err)
		}
	}
	if cb.State() != BreakerOpen {
		t.Fatalf("expected breaker open after %d failures", 2)
	}

	err := cb.Call(ctx, func() error {
		t.Fatal("open breaker must not execute the call")
		return nil
	})
	if !apperr.IsCode(err, apperr.CodeStoreUnavailable) {
		t.Fatalf("expected store_unavailable, got %v", err)
	}
	if apperr.KindOf(err) != apperr.KindUnavailable {
		t.Fatalf("expected unavailable kind, got %v", apperr.KindOf(err))
	}
}

func TestCircuitBreakerRecovers(t *testing.T) {
	cb := NewCircuitBreaker("report store", 1, time.Millisecond, 1)
	ctx := context.Background()

	_ = cb.Call(ctx, func() error { return errors.New("boom") })
	if cb.State() != BreakerOpen {
		t.Fatalf("expected open state")
	}

	time.Sleep(5 * time.Millisecond)
	if err := cb.Call(ctx, func() error { return nil }); err != nil {
		t.Fatalf("expected half-open probe to pass: %v", err)
	}
	if cb.State() != BreakerClosed {
		t.Fatalf("expected breaker closed after successful probe")
	}
}

func TestCircuitBreakerHalfOpenQuota(t *testing.T) {
	cb := NewCircuitBreaker("report store", 1, time.Millisecond, 2)
	ctx := context.Background()

	_ = cb.Call(ctx, func() error { return errors.New("boom") })
	time.Sleep(5 * time.Millisecond)

	// 嵌套调用让两个试探同时在途，第三个应被拒绝
	err := cb.Call(ctx, func() error {
		return cb.Call(ctx, func() error {
			third := cb.Call(ctx, func() error { return nil })
			if !apperr.IsCode(third, apperr.CodeStoreUnavailable) {
				t.Errorf("expected third probe rejected, got %v", third)
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("in-quota probes should pass: %v", err)
	}
}
