// Package loop runs the game controller on a fixed-interval ticker and feeds
// it clicks, one event at a time.
package loop

import (
	"context"
	"log"
	"time"

	"github.com/Garsondee/Cell-Touch/internal/game"
)

// Click is a pointer press already converted to canvas coordinates.
type Click struct {
	X float64
	Y float64
}

// Frame is what a front-end sees after each step: a state snapshot and the
// finished sessions so far.
type Frame struct {
	State    game.State
	Sessions []game.SessionRecord
}

// Driver owns a Controller. All controller access happens on the goroutine
// running Run.
type Driver struct {
	ctrl     *game.Controller
	interval time.Duration
	now      func() time.Time
	sink     func(Frame)
	newTick  func(time.Duration) (<-chan time.Time, func())
}

// Option configures a Driver.
type Option func(*Driver)

// WithInterval overrides the tick period.
func WithInterval(iv time.Duration) Option {
	return func(d *Driver) {
		if iv > 0 {
			d.interval = iv
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		d.now = now
	}
}

// WithSink receives a Frame after every tick and every click.
func WithSink(sink func(Frame)) Option {
	return func(d *Driver) {
		d.sink = sink
	}
}

// WithTicker replaces the time.Ticker source. The returned func stops it.
func WithTicker(newTick func(time.Duration) (<-chan time.Time, func())) Option {
	return func(d *Driver) {
		d.newTick = newTick
	}
}

// New creates a Driver for ctrl ticking every game.TickInterval.
func New(ctrl *game.Controller, opts ...Option) *Driver {
	d := &Driver{
		ctrl:     ctrl,
		interval: game.TickInterval,
		now:      time.Now,
		sink:     func(Frame) {},
		newTick: func(iv time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(iv)
			return t.C, t.Stop
		},
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Run starts the controller and processes ticks and clicks until ctx is
// done. Each tick or click runs to completion before the next is taken, so
// a click never lands in the middle of a tick. A closed clicks channel only
// stops input; ticking continues.
func (d *Driver) Run(ctx context.Context, clicks <-chan Click) error {
	tick, stop := d.newTick(d.interval)
	defer stop()

	d.ctrl.Start(d.now())
	d.publish()
	log.Printf("[Loop] started, tick=%s", d.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[Loop] stopped after %d ticks", d.ctrl.Ticks())
			return ctx.Err()
		case c, ok := <-clicks:
			if !ok {
				clicks = nil
				continue
			}
			d.ctrl.Click(c.X, c.Y, d.now())
			d.publish()
		case <-tick:
			d.ctrl.Tick(d.now())
			d.publish()
		}
	}
}

func (d *Driver) publish() {
	d.sink(Frame{State: d.ctrl.State(), Sessions: d.ctrl.Sessions()})
}
