package llm

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/madlrag/ragcore/pkg/safe"
	pkgsync "github.com/madlrag/ragcore/pkg/sync"
)

// Gateway is the single chokepoint for every LLM call: a counting
// semaphore bounding total in-flight calls to MaxConcurrency, an optional
// inter-call sleep, and bounded retries that re-enter the semaphore.
// Errors are surfaced to the caller uninterpreted — the gateway never
// classifies them, callers decide whether to fall back.
type Gateway struct {
	limiter   *pkgsync.Limiter
	sleep     time.Duration
	retries   int
	inFlight  atomic.Int64
	peak      atomic.Int64
	onRecover func(error)
}

// Config configures a Gateway.
type Config struct {
	// MaxConcurrency bounds total in-flight calls across all callers.
	MaxConcurrency int
	// RateLimitSleep is slept once after each call completes (success or
	// failure) before the semaphore slot is released for the next caller,
	// spacing out load on the upstream model.
	RateLimitSleep time.Duration
	// Retries is the number of additional attempts after the first.
	Retries int
}

// NewGateway builds a Gateway from cfg. MaxConcurrency <= 0 panics via
// pkg/sync.Limiter's own contract.
func NewGateway(cfg Config) *Gateway {
	return &Gateway{
		limiter: pkgsync.NewLimiter(cfg.MaxConcurrency),
		sleep:   cfg.RateLimitSleep,
		retries: cfg.Retries,
	}
}

// InFlight returns the current number of calls holding a semaphore slot.
// Exposed for the concurrency-bound testable property; not needed by
// production callers.
func (g *Gateway) InFlight() int64 { return g.inFlight.Load() }

// Call dispatches fn through the gateway: acquire the semaphore (honoring
// ctx cancellation while waiting), run fn in its own goroutine with panic
// recovery so a misbehaving model implementation cannot take down the
// caller, sleep RateLimitSleep, release, and retry up to Retries times on
// error. Retries and the wait for a semaphore slot both honor context
// cancellation and never outlive it.
func (g *Gateway) Call(ctx context.Context, model Model, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= g.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if err := g.acquire(ctx); err != nil {
			return "", err
		}

		result, err := g.runOnce(ctx, model, prompt)

		if g.sleep > 0 {
			sleepCtx(ctx, g.sleep)
		}
		g.release()

		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("llm gateway: all %d attempt(s) failed: %w", g.retries+1, lastErr)
}

func (g *Gateway) acquire(ctx context.Context) error {
	acquired := make(chan struct{})
	go func() {
		g.limiter.Acquire()
		close(acquired)
	}()

	select {
	case <-acquired:
		n := g.inFlight.Add(1)
		for {
			peak := g.peak.Load()
			if n <= peak || g.peak.CompareAndSwap(peak, n) {
				break
			}
		}
		return nil
	case <-ctx.Done():
		// The acquiring goroutine may still succeed later and leak a
		// permanently-held slot; to avoid that we let it finish acquiring
		// then immediately release, since we are abandoning this call.
		go func() {
			<-acquired
			g.limiter.Release()
		}()
		return ctx.Err()
	}
}

func (g *Gateway) release() {
	g.inFlight.Add(-1)
	g.limiter.Release()
}

func (g *Gateway) runOnce(ctx context.Context, model Model, prompt string) (string, error) {
	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)

	recovered := safe.WithRecover(func() {
		text, err := model.Generate(ctx, prompt)
		done <- outcome{text: text, err: err}
	}, func(err error) {
		done <- outcome{err: err}
	})
	go recovered()

	select {
	case o := <-done:
		return o.text, o.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
