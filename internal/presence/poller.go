package presence

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cosmiccodedger/portfolio/internal/metrics"
	"github.com/cosmiccodedger/portfolio/internal/schedule"
)

// DefaultInterval is how often the presence is refreshed.
const DefaultInterval = 30 * time.Second

// Poller refreshes one user's presence on a fixed interval and publishes
// each Result to its subscribers.
type Poller struct {
	client   *Client
	userID   string
	interval time.Duration

	current atomic.Pointer[Result]

	mu          sync.Mutex
	subscribers []func(Result)
	task        *schedule.Task
}

// NewPoller creates a Poller. Until the first poll completes, Current
// returns the offline fallback.
func NewPoller(client *Client, userID string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	p := &Poller{client: client, userID: userID, interval: interval}
	initial := Result{Snapshot: FallbackSnapshot(userID)}
	p.current.Store(&initial)
	return p
}

// Subscribe registers fn to receive every poll result. fn runs on the
// poller goroutine and must not block for long.
func (p *Poller) Subscribe(fn func(Result)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, fn)
}

// Current returns the latest result.
func (p *Poller) Current() Result {
	return *p.current.Load()
}

// UserID returns the polled Discord user.
func (p *Poller) UserID() string { return p.userID }

// PollNow performs a single poll, stores it and notifies subscribers. If ctx
// is done before the poll completes, nothing is stored and the previous
// result is returned.
func (p *Poller) PollNow(ctx context.Context) Result {
	timer := prometheus.NewTimer(metrics.PresencePollDuration)
	var res Result
	if p.userID == "" {
		logFailure(p.userID, ErrNoUserID)
		res = Result{Snapshot: FallbackSnapshot(""), Err: ErrNoUserID, FetchedAt: time.Now()}
	} else {
		res = p.client.Poll(ctx, p.userID)
	}
	timer.ObserveDuration()

	// A poll cut short by Stop says nothing about the user's presence.
	if ctx.Err() != nil {
		return p.Current()
	}

	outcome := "live"
	if !res.Live {
		outcome = "fallback"
	}
	metrics.PresencePolls.WithLabelValues(outcome).Inc()

	p.current.Store(&res)

	p.mu.Lock()
	subs := slices.Clone(p.subscribers)
	p.mu.Unlock()
	for _, fn := range subs {
		fn(res)
	}
	return res
}

// Start polls immediately and then every interval until Stop or ctx is done.
// Calling Start on a running poller does nothing.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.task != nil {
		return
	}
	p.task = schedule.Every(ctx, p.interval, func(ctx context.Context) {
		p.PollNow(ctx)
	})
}

// Stop halts polling and waits for an in-flight poll to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	task := p.task
	p.task = nil
	p.mu.Unlock()
	if task != nil {
		task.Stop()
	}
}
