// Package dots generates the floating background dots. The server owns the
// field; clients only animate what they are sent.
package dots

import (
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sizes are the CSS size classes a dot can take.
var Sizes = []string{"small", "medium", "large"}

const (
	minDuration = 15 * time.Second
	maxDuration = 40 * time.Second
	maxDelay    = 5 * time.Second

	// removalGrace is added to a dot's duration before it is removed.
	removalGrace = 5 * time.Second
)

// Dot is one decorative element.
type Dot struct {
	ID        string        `json:"id"`
	Size      string        `json:"size"`
	Left      float64       `json:"left"`
	Duration  time.Duration `json:"-"`
	Delay     time.Duration `json:"-"`
	ExpiresAt time.Time     `json:"-"`

	// Seconds, for CSS animation properties.
	DurationSec float64 `json:"duration"`
	DelaySec    float64 `json:"delay"`
}

// Lifetime is how long the dot lives before removal.
func (d Dot) Lifetime() time.Duration { return d.Duration + removalGrace }

// Generator produces randomized dots.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a Generator seeded from seed. Equal seeds yield
// equal sequences of sizes and positions.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// New creates a dot born at now.
func (g *Generator) New(now time.Time) Dot {
	g.mu.Lock()
	size := Sizes[g.rng.IntN(len(Sizes))]
	left := g.rng.Float64() * 100
	duration := minDuration + time.Duration(g.rng.Int64N(int64(maxDuration-minDuration)))
	delay := time.Duration(g.rng.Int64N(int64(maxDelay)))
	g.mu.Unlock()

	d := Dot{
		ID:          uuid.New().String(),
		Size:        size,
		Left:        left,
		Duration:    duration,
		Delay:       delay,
		DurationSec: duration.Seconds(),
		DelaySec:    delay.Seconds(),
	}
	d.ExpiresAt = now.Add(d.Lifetime())
	return d
}

// Field is the set of live dots.
type Field struct {
	gen *Generator
	now func() time.Time

	mu   sync.Mutex
	dots map[string]Dot
}

// NewField creates an empty field. now may be nil to use the wall clock.
func NewField(gen *Generator, now func() time.Time) *Field {
	if now == nil {
		now = time.Now
	}
	return &Field{gen: gen, now: now, dots: make(map[string]Dot)}
}

// Spawn adds n new dots and returns them.
func (f *Field) Spawn(n int) []Dot {
	if n <= 0 {
		return nil
	}
	out := f.Burst(n)

	f.mu.Lock()
	for _, d := range out {
		f.dots[d.ID] = d
	}
	f.mu.Unlock()
	return out
}

// Burst returns n fresh dots without adding them to the field. Every page
// opens with its own burst on top of the shared live set.
func (f *Field) Burst(n int) []Dot {
	if n <= 0 {
		return nil
	}
	now := f.now()
	out := make([]Dot, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, f.gen.New(now))
	}
	return out
}

// Sweep removes dots whose lifetime has elapsed and returns how many were removed.
func (f *Field) Sweep() int {
	now := f.now()
	f.mu.Lock()
	defer f.mu.Unlock()

	removed := 0
	for id, d := range f.dots {
		if !now.Before(d.ExpiresAt) {
			delete(f.dots, id)
			removed++
		}
	}
	return removed
}

// Live returns the current dots, oldest expiry first.
func (f *Field) Live() []Dot {
	f.mu.Lock()
	out := make([]Dot, 0, len(f.dots))
	for _, d := range f.dots {
		out = append(out, d)
	}
	f.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
	return out
}

// Len returns the number of live dots.
func (f *Field) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.dots)
}
