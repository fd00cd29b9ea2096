// Package offload runs blocking calls on a bounded pool so request goroutines only wait
package offload

import (
	"context"
	"fmt"
	"sync/atomic"

	perr "crossword/internal/platform/errors"
	"crossword/internal/platform/logger"

	"golang.org/x/sync/semaphore"
)

// Pool caps the number of jobs running at once
type Pool struct {
	sem    *semaphore.Weighted
	size   int64
	active atomic.Int64
}

// New returns a pool running at most size jobs; size below 1 means 1
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: int64(size)}
}

// Size is the configured concurrency
func (p *Pool) Size() int { return int(p.size) }

// Active is the number of jobs holding a slot right now, abandoned ones included
func (p *Pool) Active() int { return int(p.active.Load()) }

type result[T any] struct {
	v   T
	err error
}

// Do runs fn on the pool and waits for its result or for ctx to end.
//
// If ctx ends before a slot frees up fn never runs. If it ends while fn runs,
// Do returns at once and fn keeps its slot until it returns; fn gets ctx so the
// driver can cancel on its own. Both cases come back as Internal errors wrapping ctx.Err().
// A panic in fn is recovered and returned as a panic-coded error
func Do[T any](ctx context.Context, p *Pool, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return zero, perr.Internal(err, "offload: no worker before the caller gave up")
	}
	p.active.Add(1)

	done := make(chan result[T], 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				logger.C(ctx).Error().Str("panic", fmt.Sprint(rec)).Msg("offload: job panicked")
				done <- result[T]{err: perr.PanicErrf("offload: job panicked: %v", rec)}
			}
			p.active.Add(-1)
			p.sem.Release(1)
		}()
		v, err := fn(ctx)
		done <- result[T]{v: v, err: err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		return zero, perr.Internal(ctx.Err(), "offload: caller gave up while the job ran")
	}
}

// Drain waits until every running job has returned or ctx ends
func (p *Pool) Drain(ctx context.Context) error {
	if err := p.sem.Acquire(ctx, p.size); err != nil {
		return err
	}
	p.sem.Release(p.size)
	return nil
}
