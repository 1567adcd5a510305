package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"FinBridge/internal/domain/models"
	"FinBridge/internal/domain/repository"
)

type outcome[T any] struct {
	provider models.ProviderID
	val      T
	err      error
}

// callWithTimeout runs fn under its own deadline. A timeout surfaces as an
// error even if fn ignores ctx.
func callWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(cctx)
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil && ctx.Err() == nil && errors.Is(cctx.Err(), context.DeadlineExceeded) {
			return r.v, errTimeout(timeout)
		}
		return r.v, r.err
	case <-cctx.Done():
		var zero T
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		return zero, errTimeout(timeout)
	}
}

func errTimeout(d time.Duration) error {
	return fmt.Errorf("timed out after %s", d)
}

// fanOut calls every provider concurrently under the per-call timeout and
// returns outcomes in provider order.
func fanOut[T any](ctx context.Context, s settings, op string, providers []repository.BankProvider, call func(context.Context, repository.BankProvider) (T, error)) []outcome[T] {
	return fanOutWithin(ctx, s, op, s.timeout, providers, call)
}

// fanOutWithin is fanOut with an explicit deadline per provider. A zero
// timeout leaves deadlines to call.
func fanOutWithin[T any](ctx context.Context, s settings, op string, timeout time.Duration, providers []repository.BankProvider, call func(context.Context, repository.BankProvider) (T, error)) []outcome[T] {
	out := make([]outcome[T], len(providers))
	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(i int, p repository.BankProvider) {
			defer wg.Done()
			start := time.Now()
			var (
				v   T
				err error
			)
			if timeout > 0 {
				v, err = callWithTimeout(ctx, timeout, func(cctx context.Context) (T, error) {
					return call(cctx, p)
				})
			} else {
				v, err = call(ctx, p)
			}
			s.metrics.RecordProviderCall(string(p.ID()), op, resultLabel(err), time.Since(start).Seconds())
			out[i] = outcome[T]{provider: p.ID(), val: v, err: err}
		}(i, p)
	}
	wg.Wait()
	return out
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
