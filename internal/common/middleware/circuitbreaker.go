package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
)

// BreakerState 熔断器状态
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // 正常放行
	BreakerOpen                         // 熔断，快速失败
	BreakerHalfOpen                     // 试探恢复
)

// CircuitBreaker 包在报表等聚合查询外面的熔断器：
// 存储连续出错达到阈值后在 resetTimeout 内直接快速失败，
// 超时后进入半开，放行最多 halfOpenMax 个试探请求。
// 熔断中返回 store_unavailable（KindUnavailable），交互层据此提示稍后重试。
type CircuitBreaker struct {
	name         string
	maxFailures  int
	resetTimeout time.Duration
	halfOpenMax  int

	mu           sync.Mutex
	state        BreakerState
	failures     int
	probes       int // 半开状态已放行的试探数
	lastFailTime time.Time
}

// NewCircuitBreaker 创建熔断器。halfOpenMax <= 0 时取 1（至少放行一个试探）。
func NewCircuitBreaker(name string, maxFailures int, resetTimeout time.Duration, halfOpenMax int) *CircuitBreaker {
	if halfOpenMax <= 0 {
		halfOpenMax = 1
	}
	return &CircuitBreaker{
		name:         name,
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		halfOpenMax:  halfOpenMax,
		state:        BreakerClosed,
	}
}

// Call 经熔断器执行 fn。熔断中/试探额度用尽时不执行 fn。
func (cb *CircuitBreaker) Call(ctx context.Context, fn func() error) error {
	if err := cb.allow(); err != nil {
		return err
	}
	err := fn()
	cb.record(err)
	return err
}

// allow 判定当前请求是否放行，并完成 开 -> 半开 的超时转换。
func (cb *CircuitBreaker) allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == BreakerOpen {
		if time.Since(cb.lastFailTime) < cb.resetTimeout {
			return apperr.Unavailablef(apperr.CodeStoreUnavailable, "%s is failing, try again later", cb.name)
		}
		cb.state = BreakerHalfOpen
		cb.probes = 0
	}

	if cb.state == BreakerHalfOpen {
		if cb.probes >= cb.halfOpenMax {
			return apperr.Unavailablef(apperr.CodeStoreUnavailable, "%s is recovering, try again later", cb.name)
		}
		cb.probes++
	}
	return nil
}

// record 根据调用结果完成 闭 -> 开 / 半开 -> 闭 / 半开 -> 开 的转换。
func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailTime = time.Now()
		if cb.state == BreakerHalfOpen || cb.failures >= cb.maxFailures {
			cb.state = BreakerOpen
			cb.probes = 0
		}
		return
	}

	if cb.state == BreakerHalfOpen {
		cb.state = BreakerClosed
		cb.probes = 0
	}
	cb.failures = 0
}

// State 当前状态。
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
