package core

// import_limiter.go bounds how many spreadsheet imports run at once.
//
// Each import holds a slot for its whole duration. When every slot is
// taken, a new import waits up to maxWait and then fails with
// ErrTooManyImports. WaitForDrain lets shutdown wait for running imports.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyImports is returned when no import slot frees up in time.
var ErrTooManyImports = errors.New("too many concurrent imports")

// Defaults used when NewImportLimiter gets non-positive values.
const (
	DefaultMaxConcurrentImports = 2
	DefaultImportWait           = 10 * time.Second
)

// ImportLimiter is a counting semaphore over import slots.
// A nil *ImportLimiter admits everything.
type ImportLimiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu      sync.Mutex
	drained *sync.Cond
	active  int
}

// NewImportLimiter allows at most maxConcurrent imports at a time.
func NewImportLimiter(maxConcurrent int, maxWait time.Duration) *ImportLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentImports
	}
	if maxWait <= 0 {
		maxWait = DefaultImportWait
	}

	l := &ImportLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
	l.drained = sync.NewCond(&l.mu)
	return l
}

// Acquire takes a slot, waiting up to maxWait.
// Every successful Acquire must be paired with one Release.
func (l *ImportLimiter) Acquire(ctx context.Context) error {
	if l == nil {
		return nil
	}

	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyImports
	}
}

// Release frees a slot taken by Acquire.
func (l *ImportLimiter) Release() {
	if l == nil {
		return
	}

	l.mu.Lock()
	l.active--
	if l.active == 0 {
		l.drained.Broadcast()
	}
	l.mu.Unlock()

	<-l.slots
}

// Active returns the number of imports holding a slot.
func (l *ImportLimiter) Active() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// WaitForDrain blocks until no import holds a slot or ctx is done.
func (l *ImportLimiter) WaitForDrain(ctx context.Context) error {
	if l == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		l.mu.Lock()
		for l.active > 0 {
			l.drained.Wait()
		}
		l.mu.Unlock()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
