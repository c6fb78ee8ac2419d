package dots

import (
	"context"
	"sync"
	"time"

	"github.com/cosmiccodedger/portfolio/internal/metrics"
	"github.com/cosmiccodedger/portfolio/internal/schedule"
)

// Animator seeds a Field and keeps topping it up on a fixed interval.
type Animator struct {
	field    *Field
	initial  int
	perTick  int
	interval time.Duration
	onSpawn  func([]Dot)

	mu     sync.Mutex
	task   *schedule.Task
	seeded bool
}

// NewAnimator creates an Animator. onSpawn, if non-nil, receives each batch
// of new dots.
func NewAnimator(field *Field, initial, perTick int, interval time.Duration, onSpawn func([]Dot)) *Animator {
	return &Animator{
		field:    field,
		initial:  initial,
		perTick:  perTick,
		interval: interval,
		onSpawn:  onSpawn,
	}
}

// Field returns the animated field.
func (a *Animator) Field() *Field { return a.field }

// Tick performs one step: the first call seeds the initial dots, every
// later call sweeps expired dots and spawns perTick new ones.
func (a *Animator) Tick() []Dot {
	a.mu.Lock()
	n := a.perTick
	if !a.seeded {
		n = a.initial
		a.seeded = true
	}
	a.mu.Unlock()

	a.field.Sweep()
	spawned := a.field.Spawn(n)
	metrics.DotsLive.Set(float64(a.field.Len()))

	if a.onSpawn != nil && len(spawned) > 0 {
		a.onSpawn(spawned)
	}
	return spawned
}

// Start seeds the field and begins ticking until Stop or ctx is done.
func (a *Animator) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.task != nil {
		return
	}
	a.task = schedule.Every(ctx, a.interval, func(context.Context) { a.Tick() })
}

// Stop halts the animator.
func (a *Animator) Stop() {
	a.mu.Lock()
	task := a.task
	a.task = nil
	a.mu.Unlock()
	if task != nil {
		task.Stop()
	}
}
