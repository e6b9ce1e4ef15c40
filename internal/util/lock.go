// Package util provides shared utility functions for touchgo.
package util

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/gofrs/flock"

	"touchgo/internal/common"
)

// DefaultLockRetryOptions returns the backoff used when another process
// briefly holds the sandbox lock.
func DefaultLockRetryOptions(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Attempts(5),
		retry.Delay(100 * time.Millisecond),
		retry.MaxDelay(1 * time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	}
}

// AcquireLock takes an advisory lock on the file at path, retrying with
// backoff while another process holds it. The caller unlocks the returned
// lock when done with the sandbox.
func AcquireLock(ctx context.Context, path string, opts ...retry.Option) (*flock.Flock, error) {
	if len(opts) == 0 {
		opts = DefaultLockRetryOptions(ctx)
	}
	lock := flock.New(path)
	err := retry.Do(func() error {
		ok, err := lock.TryLock()
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrLocked
		}
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return lock, nil
}
