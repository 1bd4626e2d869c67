package retr

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sourcecd/warehouse/internal/prjerrors"
)

type Retr struct {
	maxRetries uint64
	fiboDuration,
	timeout time.Duration
	skippedErrors []error
}

func (rtr *Retr) skipped(err error) bool {
	for _, e := range rtr.skippedErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return errors.Is(err, context.Canceled)
}

// Do runs f until it succeeds, returns a skipped error, or the retry budget is spent.
func Do[T any](ctx context.Context, rtr *Retr, f func(ctx context.Context) (T, error)) (T, error) {
	bf := retry.WithMaxRetries(rtr.maxRetries, retry.NewFibonacci(rtr.fiboDuration))

	ctx, cancel := context.WithTimeout(ctx, rtr.timeout)
	defer cancel()
	var res T
	err := retry.Do(ctx, bf, func(ctx context.Context) error {
		var err error
		res, err = f(ctx)
		if err == nil || rtr.skipped(err) {
			return err
		}
		return retry.RetryableError(err)
	})
	return res, err
}

// Exec is Do for calls without a result.
func Exec(ctx context.Context, rtr *Retr, f func(ctx context.Context) error) error {
	_, err := Do(ctx, rtr, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, f(ctx)
	})
	return err
}

func (rtr *Retr) SetParams(fibotime, timeout time.Duration, maxretries uint64) {
	rtr.fiboDuration = fibotime
	rtr.maxRetries = maxretries
	rtr.timeout = timeout
}

func NewRetr() *Retr {
	return &Retr{
		fiboDuration: 1 * time.Second,
		maxRetries:   3,
		timeout:      60 * time.Second,
		skippedErrors: []error{
			prjerrors.ErrAlreadyExists,
			prjerrors.ErrNotExists,
			prjerrors.ErrEmptyData,
			prjerrors.ErrWorksheetNotFound,
			prjerrors.ErrOrderNotFound,
			prjerrors.ErrExportFailed,
			prjerrors.ErrSheetRequest,
		},
	}
}

func (rtr *Retr) GetTimeoutCtx() time.Duration {
	return rtr.timeout
}
