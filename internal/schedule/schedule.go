// Package schedule runs repeating background work with an explicit stop handle.
package schedule

import (
	"context"
	"sync"
	"time"
)

// Task is a running repeating job started by Every.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Every calls fn once immediately and then on every tick of interval until
// ctx is cancelled or Stop is called. Runs never overlap: a slow fn delays
// the next tick.
func Every(ctx context.Context, interval time.Duration, fn func(context.Context)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)

		fn(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				fn(ctx)
			}
		}
	}()

	return t
}

// Stop cancels the task and waits for the current run to finish.
// It is safe to call more than once.
func (t *Task) Stop() {
	t.once.Do(t.cancel)
	<-t.done
}

// Done is closed once the task has exited.
func (t *Task) Done() <-chan struct{} { return t.done }
