package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestDecodeLimiter_AcquireRelease(t *testing.T) {
	limiter := NewDecodeLimiter(2, time.Second)
	ctx := context.Background()

	if got := limiter.Capacity(); got != 2 {
		t.Errorf("Capacity = %d, want 2", got)
	}

	for i := 0; i < 2; i++ {
		if err := limiter.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d: %v", i, err)
		}
	}
	if got := limiter.Active(); got != 2 {
		t.Errorf("Active = %d, want 2", got)
	}

	limiter.Release()
	limiter.Release()
	if got := limiter.Active(); got != 0 {
		t.Errorf("Active after Release = %d, want 0", got)
	}
}

func TestDecodeLimiter_Busy(t *testing.T) {
	limiter := NewDecodeLimiter(1, 20*time.Millisecond)
	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer limiter.Release()

	if err := limiter.Acquire(ctx); !errors.Is(err, ErrDecoderBusy) {
		t.Errorf("second Acquire = %v, want ErrDecoderBusy", err)
	}
}

func TestDecodeLimiter_Cancelled(t *testing.T) {
	limiter := NewDecodeLimiter(1, time.Minute)
	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer limiter.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := limiter.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire = %v, want context.Canceled", err)
	}
}

func TestDecodeLimiter_Defaults(t *testing.T) {
	limiter := NewDecodeLimiter(0, 0)
	if got := limiter.Capacity(); got != DefaultMaxConcurrentDecodes {
		t.Errorf("Capacity = %d, want %d", got, DefaultMaxConcurrentDecodes)
	}
	if limiter.maxWait != DefaultDecodeWait {
		t.Errorf("maxWait = %v, want %v", limiter.maxWait, DefaultDecodeWait)
	}
}

func TestDecodeLimiter_NeverExceedsCapacity(t *testing.T) {
	limiter := NewDecodeLimiter(3, time.Second)
	ctx := context.Background()

	var (
		mu   sync.Mutex
		peak int
		wg   sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Acquire(ctx); err != nil {
				t.Errorf("Acquire: %v", err)
				return
			}
			mu.Lock()
			if n := limiter.Active(); n > peak {
				peak = n
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			limiter.Release()
		}()
	}
	wg.Wait()

	if peak > 3 {
		t.Errorf("peak Active = %d, want <= 3", peak)
	}
}
