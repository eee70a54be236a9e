// Package progress animates pipeline progress. Stages report coarse targets
// (10%, 30%, ...) and the animator walks the displayed value toward the
// latest target one step at a time, so progress displays advance smoothly
// instead of jumping between stage boundaries.
package progress

import (
	"sync"
	"time"
)

// Update carries one displayed progress value and the stage it belongs to.
type Update struct {
	Percent int
	Stage   string
}

// Animator drives a render callback from a single goroutine. SetTarget and
// Stop are safe to call from any goroutine.
type Animator struct {
	mu     sync.Mutex
	target int
	stage  string

	render   func(Update)
	interval time.Duration

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewAnimator starts the animation loop. render is called with each step the
// displayed value takes toward the current target.
func NewAnimator(interval time.Duration, render func(Update)) *Animator {
	a := &Animator{
		render:   render,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go a.loop()
	return a
}

// SetTarget moves the goal the displayed value walks toward. Lower targets
// than the current display are ignored so progress never moves backward.
func (a *Animator) SetTarget(percent int, stage string) {
	if percent > 100 {
		percent = 100
	}
	a.mu.Lock()
	if percent > a.target {
		a.target = percent
	}
	a.stage = stage
	a.mu.Unlock()
}

// Stop renders the final target value, ends the loop, and waits for the
// animation goroutine to exit. Safe to call more than once.
func (a *Animator) Stop() {
	a.stopOnce.Do(func() {
		close(a.stop)
	})
	<-a.done
}

func (a *Animator) loop() {
	defer close(a.done)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	current := 0
	for {
		select {
		case <-a.stop:
			a.mu.Lock()
			target, stage := a.target, a.stage
			a.mu.Unlock()
			if current < target {
				a.render(Update{Percent: target, Stage: stage})
			}
			return
		case <-ticker.C:
			a.mu.Lock()
			target, stage := a.target, a.stage
			a.mu.Unlock()
			if current < target {
				current++
				a.render(Update{Percent: current, Stage: stage})
			}
		}
	}
}
