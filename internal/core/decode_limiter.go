package core

// decode_limiter.go bounds how many workbooks are decoded at once.
//
// Decoding a workbook inflates the whole zip into memory, so a burst of
// uploads can exhaust the process long before the rate limiter reacts.
// Callers wait up to maxWait for a slot and then fail with ErrDecoderBusy.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrDecoderBusy is returned when no decode slot frees up in time.
var ErrDecoderBusy = errors.New("too many spreadsheets being read at once")

const (
	// DefaultMaxConcurrentDecodes is used when the configured limit is not positive.
	DefaultMaxConcurrentDecodes = 5

	// DefaultDecodeWait is used when the configured wait is not positive.
	DefaultDecodeWait = 30 * time.Second
)

// DecodeLimiter is a counting semaphore around Decoder.Decode.
type DecodeLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// NewDecodeLimiter allows at most maxConcurrent decodes at a time.
func NewDecodeLimiter(maxConcurrent int, maxWait time.Duration) *DecodeLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentDecodes
	}
	if maxWait <= 0 {
		maxWait = DefaultDecodeWait
	}
	return &DecodeLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot, waiting at most maxWait. The caller must Release it.
// Cancellation of ctx is reported as ctx.Err(), not ErrDecoderBusy.
func (l *DecodeLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrDecoderBusy
	}
}

// Release returns a slot taken by Acquire.
func (l *DecodeLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// Active returns the number of decodes in progress.
func (l *DecodeLimiter) Active() int {
	return int(l.active.Load())
}

// Capacity returns the configured maximum.
func (l *DecodeLimiter) Capacity() int {
	return cap(l.slots)
}
