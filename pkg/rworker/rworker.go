package rworker

import (
	"context"
	"sync"
)

// Job runs fn on its own goroutine, limited by the rate channel's capacity.
// A non-nil error is offered to errCh without blocking; if the context is
// cancelled before a slot frees up, fn never runs.
func Job(ctx context.Context, wg *sync.WaitGroup, fn func() error, rate chan struct{}, errCh chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case rate <- struct{}{}:
		case <-ctx.Done():
			return
		}
		if err := fn(); err != nil {
			select {
			case errCh <- err:
			default:
			}
		}
		<-rate
	}()
}
