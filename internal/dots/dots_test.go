package dots

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestGeneratorBounds(t *testing.T) {
	g := NewGenerator(1)
	now := time.Unix(1_700_000_000, 0)
	sizes := map[string]bool{}

	for i := 0; i < 1000; i++ {
		d := g.New(now)
		sizes[d.Size] = true
		if d.Left < 0 || d.Left >= 100 {
			t.Fatalf("left out of range: %f", d.Left)
		}
		if d.Duration < 15*time.Second || d.Duration >= 40*time.Second {
			t.Fatalf("duration out of range: %s", d.Duration)
		}
		if d.Delay < 0 || d.Delay >= 5*time.Second {
			t.Fatalf("delay out of range: %s", d.Delay)
		}
		if !d.ExpiresAt.Equal(now.Add(d.Duration + 5*time.Second)) {
			t.Fatalf("expiry should be duration + 5s after birth")
		}
		if d.DurationSec != d.Duration.Seconds() {
			t.Fatalf("duration seconds mismatch")
		}
	}
	for _, s := range Sizes {
		if !sizes[s] {
			t.Errorf("size %q never generated", s)
		}
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	now := time.Now()
	a, b := NewGenerator(7), NewGenerator(7)
	for i := 0; i < 10; i++ {
		da, db := a.New(now), b.New(now)
		if da.Size != db.Size || da.Left != db.Left || da.Duration != db.Duration {
			t.Fatalf("dot %d differs for equal seeds", i)
		}
	}
}

func TestFieldSweepRemovesExpired(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	f := NewField(NewGenerator(3), clock.Now)

	f.Spawn(50)
	if f.Len() != 50 {
		t.Fatalf("len = %d, want 50", f.Len())
	}

	// Nothing lives shorter than 20s (15s + grace).
	clock.Advance(19 * time.Second)
	if n := f.Sweep(); n != 0 {
		t.Errorf("swept %d dots before any could expire", n)
	}

	// Everything is gone after 45s (40s + grace).
	clock.Advance(26 * time.Second)
	f.Sweep()
	if f.Len() != 0 {
		t.Errorf("len = %d after all lifetimes elapsed, want 0", f.Len())
	}
}

func TestFieldLiveOrdered(t *testing.T) {
	f := NewField(NewGenerator(5), nil)
	f.Spawn(20)
	live := f.Live()
	for i := 1; i < len(live); i++ {
		if live[i].ExpiresAt.Before(live[i-1].ExpiresAt) {
			t.Fatal("Live should be ordered by expiry")
		}
	}
}

func TestSpawnZero(t *testing.T) {
	f := NewField(NewGenerator(1), nil)
	if got := f.Spawn(0); got != nil {
		t.Errorf("Spawn(0) = %v, want nil", got)
	}
}

func TestBurstIsNotTracked(t *testing.T) {
	f := NewField(NewGenerator(4), nil)
	f.Spawn(3)

	burst := f.Burst(200)
	if len(burst) != 200 {
		t.Fatalf("Burst(200) returned %d dots", len(burst))
	}
	if f.Len() != 3 {
		t.Errorf("field len = %d after burst, want 3", f.Len())
	}
	if f.Burst(0) != nil {
		t.Error("Burst(0) should return nil")
	}
}

func TestAnimatorTick(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	var batches [][]Dot
	a := NewAnimator(NewField(NewGenerator(9), clock.Now), 200, 2, time.Second, func(d []Dot) {
		batches = append(batches, d)
	})

	if got := len(a.Tick()); got != 200 {
		t.Fatalf("first tick spawned %d, want 200", got)
	}
	clock.Advance(time.Second)
	if got := len(a.Tick()); got != 2 {
		t.Fatalf("second tick spawned %d, want 2", got)
	}
	if a.Field().Len() != 202 {
		t.Errorf("field len = %d, want 202", a.Field().Len())
	}
	if len(batches) != 2 {
		t.Errorf("onSpawn called %d times, want 2", len(batches))
	}

	// Once every earlier dot has expired only the fresh batch remains.
	clock.Advance(time.Minute)
	a.Tick()
	if a.Field().Len() != 2 {
		t.Errorf("field len = %d after expiry, want 2", a.Field().Len())
	}
}

func TestAnimatorStartStop(t *testing.T) {
	a := NewAnimator(NewField(NewGenerator(2), nil), 10, 1, time.Millisecond, nil)
	a.Start(t.Context())

	deadline := time.Now().Add(2 * time.Second)
	for a.Field().Len() < 12 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	a.Stop()

	if a.Field().Len() < 12 {
		t.Fatalf("expected seeded field plus spawned dots, got %d", a.Field().Len())
	}
	n := a.Field().Len()
	time.Sleep(10 * time.Millisecond)
	if a.Field().Len() != n {
		t.Error("animator kept spawning after Stop")
	}
}
