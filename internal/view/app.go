package view

import (
	"context"
	"errors"
	"log"
	"slices"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Cell-Touch/internal/assets"
	"github.com/Garsondee/Cell-Touch/internal/game"
	"github.com/Garsondee/Cell-Touch/internal/loop"
	"github.com/Garsondee/Cell-Touch/internal/render"
)

// clickBuffer is how many presses may queue while the driver is busy.
const clickBuffer = 16

// App implements ebiten.Game. It waits for the assets, then starts the
// driver on its own goroutine and draws whichever frame it published last.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	canvas  *Canvas
	pending <-chan assets.Result
	ready   bool

	driverOpts []loop.Option
	ctrl       *game.Controller
	clicks     chan loop.Click
	done       chan error

	mu    sync.Mutex
	frame loop.Frame

	copyText func(string) error
}

// NewApp prepares an App for ctrl. The driver does not start until the
// asset result arrives; opts are passed through to loop.New.
func NewApp(ctx context.Context, ctrl *game.Controller, pending <-chan assets.Result, opts ...loop.Option) (*App, error) {
	canvas, err := NewCanvas()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	a := &App{
		ctx:      ctx,
		cancel:   cancel,
		canvas:   canvas,
		pending:  pending,
		ctrl:     ctrl,
		clicks:   make(chan loop.Click, clickBuffer),
		done:     make(chan error, 1),
		copyText: clipboard.WriteAll,
	}
	a.driverOpts = append(slices.Clone(opts), loop.WithSink(a.publish))
	return a, nil
}

// Frame returns the last published frame.
func (a *App) Frame() loop.Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frame
}

func (a *App) publish(f loop.Frame) {
	a.mu.Lock()
	a.frame = f
	a.mu.Unlock()
}

// Close stops the driver and waits for it to return.
func (a *App) Close() error {
	a.cancel()
	if !a.ready {
		return nil
	}
	if err := <-a.done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *App) Update() error {
	if a.ctx.Err() != nil {
		return ebiten.Termination
	}
	if !a.ready {
		res, ok, closed := a.pollAssets()
		if closed {
			return ebiten.Termination
		}
		if !ok {
			return nil
		}
		a.install(res)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.sendClick(float64(x), float64(y))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		a.sendClick(float64(x), float64(y))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.copySummary()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	if !a.ready {
		ebitenutil.DebugPrintAt(screen, "Loading...", 8, 8)
		return
	}
	render.Draw(a.canvas.Target(screen), a.Frame().State)
}

func (a *App) Layout(_, _ int) (int, int) {
	return game.CanvasWidth, game.CanvasHeight
}

// pollAssets checks for the asset result without blocking. closed reports a
// channel that closed with no result, which happens on cancellation.
func (a *App) pollAssets() (res assets.Result, ok, closed bool) {
	select {
	case r, open := <-a.pending:
		if !open {
			return assets.Result{}, false, true
		}
		return r, true, false
	default:
		return assets.Result{}, false, false
	}
}

func (a *App) install(res assets.Result) {
	if res.Err != nil {
		log.Printf("[Assets] %v", res.Err)
	}
	a.canvas.SetImage(render.AssetTitle, res.Title)
	a.canvas.SetImage(render.AssetBackground, res.Background)
	a.ready = true

	d := loop.New(a.ctrl, a.driverOpts...)
	go func() { a.done <- d.Run(a.ctx, a.clicks) }()
}

// sendClick queues a press, dropping it if the queue is full.
func (a *App) sendClick(x, y float64) {
	select {
	case a.clicks <- loop.Click{X: x, Y: y}:
	default:
		log.Printf("[Loop] click dropped at (%.0f,%.0f)", x, y)
	}
}

func (a *App) copySummary() {
	summary := game.FormatSessions(a.Frame().Sessions)
	if err := a.copyText(summary); err != nil {
		log.Printf("[Session] clipboard: %v", err)
		return
	}
	log.Printf("[Session] summary copied to clipboard")
}
