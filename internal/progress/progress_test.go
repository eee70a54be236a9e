package progress

import (
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu      sync.Mutex
	updates []Update
}

func (r *recorder) render(u Update) {
	r.mu.Lock()
	r.updates = append(r.updates, u)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Update(nil), r.updates...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestAnimator_WalksTowardTarget(t *testing.T) {
	rec := &recorder{}
	a := NewAnimator(time.Millisecond, rec.render)
	defer a.Stop()

	a.SetTarget(3, "Downloading video...")

	waitFor(t, func() bool {
		ups := rec.snapshot()
		return len(ups) > 0 && ups[len(ups)-1].Percent == 3
	})

	ups := rec.snapshot()
	for i, u := range ups {
		if u.Percent != i+1 {
			t.Errorf("update %d has percent %d, want %d", i, u.Percent, i+1)
		}
		if u.Stage != "Downloading video..." {
			t.Errorf("update %d has stage %q", i, u.Stage)
		}
	}
}

func TestAnimator_NeverMovesBackward(t *testing.T) {
	rec := &recorder{}
	a := NewAnimator(time.Millisecond, rec.render)
	defer a.Stop()

	a.SetTarget(5, "first")
	waitFor(t, func() bool {
		ups := rec.snapshot()
		return len(ups) > 0 && ups[len(ups)-1].Percent == 5
	})

	// A lower target must not rewind the display.
	a.SetTarget(2, "second")
	time.Sleep(20 * time.Millisecond)

	last := 0
	for _, u := range rec.snapshot() {
		if u.Percent < last {
			t.Fatalf("progress went backward: %d after %d", u.Percent, last)
		}
		last = u.Percent
	}
	if last != 5 {
		t.Errorf("final percent = %d, want 5", last)
	}
}

func TestAnimator_StopRendersFinalTarget(t *testing.T) {
	rec := &recorder{}
	// Slow ticker so Stop arrives before the walk completes.
	a := NewAnimator(time.Hour, rec.render)

	a.SetTarget(100, "Finalizing analysis...")
	a.Stop()

	ups := rec.snapshot()
	if len(ups) == 0 {
		t.Fatal("no updates rendered")
	}
	final := ups[len(ups)-1]
	if final.Percent != 100 {
		t.Errorf("final percent = %d, want 100", final.Percent)
	}
	if final.Stage != "Finalizing analysis..." {
		t.Errorf("final stage = %q", final.Stage)
	}
}

func TestAnimator_StopIsIdempotent(t *testing.T) {
	a := NewAnimator(time.Millisecond, func(Update) {})
	a.Stop()
	a.Stop()
}
