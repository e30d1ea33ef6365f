package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/fortify/timeout"
)

type callOutcome[T any] struct {
	value T
	err   error
}

// CallWithTimeout runs fn bounded by limit. fn runs on its own goroutine, so a
// collaborator that ignores its context is abandoned when the limit expires
// and the call fails with ErrTimeout tagged with component and op. A
// non-positive limit runs fn with the caller's context only.
func CallWithTimeout[T any](ctx context.Context, limit time.Duration, component, op string, fn func(context.Context) (T, error)) (T, error) {
	if limit <= 0 {
		return fn(ctx)
	}
	guard := timeout.New[T](timeout.Config{DefaultTimeout: limit})
	result, err := guard.Execute(ctx, limit, func(ctx context.Context) (T, error) {
		done := make(chan callOutcome[T], 1)
		go func() {
			var out callOutcome[T]
			defer func() {
				if r := recover(); r != nil {
					out = callOutcome[T]{err: Wrap(ErrExternalTool, component, op, fmt.Sprintf("panic: %v", r), nil)}
				}
				done <- out
			}()
			out.value, out.err = fn(ctx)
		}()
		select {
		case out := <-done:
			return out.value, out.err
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	})
	if err == nil {
		return result, nil
	}
	if errors.Is(err, context.Canceled) {
		var zero T
		return zero, Wrap(ErrExternalTool, component, op, "canceled", err)
	}
	if Classify(err) == FailureTimeout {
		var zero T
		return zero, Wrap(ErrTimeout, component, op, "exceeded "+limit.String(), err)
	}
	return result, err
}
