package scrape

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// workerPool bounds the number of concurrent detail-page fetches and spaces
// them out so a platform is never hammered.
type workerPool struct {
	semaphore   chan struct{}
	rateLimit   time.Duration
	wg          sync.WaitGroup
	mu          sync.Mutex
	lastRequest time.Time
}

func newWorkerPool(maxWorkers, rateLimitMs int) *workerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &workerPool{
		semaphore: make(chan struct{}, maxWorkers),
		rateLimit: time.Duration(rateLimitMs) * time.Millisecond,
	}
}

// submit runs job on the pool, honoring the rate limit. It returns without
// enqueueing when ctx is already done.
func (p *workerPool) submit(ctx context.Context, job func()) {
	select {
	case <-ctx.Done():
		return
	case p.semaphore <- struct{}{}:
	}
	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		defer func() { <-p.semaphore }()

		p.pace()
		job()
	}()
}

// wait blocks until every submitted job has finished.
func (p *workerPool) wait() {
	p.wg.Wait()
}

func (p *workerPool) pace() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if elapsed := time.Since(p.lastRequest); elapsed < p.rateLimit {
		time.Sleep(p.rateLimit - elapsed)
	}
	p.lastRequest = time.Now()
}

// withRetry executes fn with exponential back-off, giving up early when the
// context is cancelled.
func withRetry(ctx context.Context, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	var lastErr error
	delay := baseDelay

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt < attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}
