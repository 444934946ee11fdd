package terminal

import (
	"context"
	"errors"
	"log"
	"slices"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Cell-Touch/internal/assets"
	"github.com/Garsondee/Cell-Touch/internal/game"
	"github.com/Garsondee/Cell-Touch/internal/loop"
	"github.com/Garsondee/Cell-Touch/internal/render"
)

// UI runs the game inside a terminal. The caller owns the screen's Init
// and Fini.
type UI struct {
	screen tcell.Screen
	canvas *Canvas
	ctrl   *game.Controller

	clicks chan loop.Click
	frames chan loop.Frame
	last   loop.Frame

	button1  bool // previous state, so a held button clicks once
	copyText func(string) error
}

// NewUI builds a front-end drawing to an initialised screen.
func NewUI(screen tcell.Screen, ctrl *game.Controller) *UI {
	return &UI{
		screen:   screen,
		canvas:   NewCanvas(screen),
		ctrl:     ctrl,
		clicks:   make(chan loop.Click, 16),
		frames:   make(chan loop.Frame, 1),
		copyText: clipboard.WriteAll,
	}
}

// Run waits for the assets, then drives the game until ctx is done or the
// player quits. A quit returns nil.
func (u *UI) Run(ctx context.Context, pending <-chan assets.Result, opts ...loop.Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	u.screen.EnableMouse()
	u.screen.Clear()
	u.screen.Show()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res, ok := <-pending:
		if !ok {
			return ctx.Err()
		}
		if res.Err != nil {
			log.Printf("[Assets] %v", res.Err)
		}
		u.canvas.SetImage(render.AssetTitle, res.Title)
		u.canvas.SetImage(render.AssetBackground, res.Background)
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	done := make(chan error, 1)
	d := loop.New(u.ctrl, append(slices.Clone(opts), loop.WithSink(u.publish))...)
	go func() { done <- d.Run(ctx, u.clicks) }()

	for {
		select {
		case err := <-done:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case f := <-u.frames:
			u.last = f
			u.draw()
		case ev := <-events:
			if !u.handleEvent(ev) {
				cancel()
			}
		}
	}
}

// publish keeps only the newest frame; the UI never needs a stale one.
func (u *UI) publish(f loop.Frame) {
	for {
		select {
		case u.frames <- f:
			return
		default:
		}
		select {
		case <-u.frames:
		default:
		}
	}
}

func (u *UI) draw() {
	u.canvas.Resize()
	u.screen.Clear()
	render.Draw(u.canvas, u.last.State)
	u.screen.Show()
}

// handleEvent reports false when the player asked to quit.
func (u *UI) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return u.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		col, row := ev.Position()
		u.handleMouse(col, row, ev.Buttons())
	case *tcell.EventResize:
		u.screen.Sync()
		u.draw()
	}
	return true
}

func (u *UI) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return false
		case 'c', 'C':
			u.copySummary()
		}
	}
	return true
}

// handleMouse turns a button-1 press into a click at the cell's centre.
func (u *UI) handleMouse(col, row int, buttons tcell.ButtonMask) {
	pressed := buttons&tcell.Button1 != 0
	if pressed && !u.button1 {
		x, y := u.canvas.ToCanvas(col, row)
		select {
		case u.clicks <- loop.Click{X: x, Y: y}:
		default:
			log.Printf("[Loop] click dropped at (%.0f,%.0f)", x, y)
		}
	}
	u.button1 = pressed
}

func (u *UI) copySummary() {
	summary := game.FormatSessions(u.last.Sessions)
	if err := u.copyText(summary); err != nil {
		log.Printf("[Session] clipboard: %v", err)
		return
	}
	log.Printf("[Session] summary copied to clipboard")
}
