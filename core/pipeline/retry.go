package pipeline

import (
	"context"
	"errors"
	"time"

	"content-forge/core/errs"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy retries an operation a bounded number of times with a fixed delay.
// Configuration errors are never retried.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Do runs op until it succeeds, fails permanently, or attempts run out. notify, when
// set, is called before every retry.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error, notify func(attempt int, err error, next time.Duration)) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := op(ctx)
		if err != nil && errors.Is(err, errs.ErrConfiguration) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(p.Delay)),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			if notify != nil {
				notify(attempt, err, next)
			}
		}),
	)
	return err
}
