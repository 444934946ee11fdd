package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Cell-Touch/internal/assets"
	"github.com/Garsondee/Cell-Touch/internal/config"
	"github.com/Garsondee/Cell-Touch/internal/game"
	"github.com/Garsondee/Cell-Touch/internal/loop"
	"github.com/Garsondee/Cell-Touch/internal/view"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	events := game.NewEventLog(256, cfg.Verbose)
	if cfg.Verbose {
		events.Subscribe(func(e game.EventLogEntry) { log.Print(e) })
	}
	seed := cfg.SeedOrNow()
	log.Printf("[Session] seed=%d", seed)
	ctrl := game.NewController(rand.New(rand.NewSource(seed)), game.WithEventLog(events)) // #nosec G404 -- gameplay RNG

	pending := assets.Load(ctx, assets.Sources{Title: cfg.TitleImage, Background: cfg.BackgroundImage})
	app, err := view.NewApp(ctx, ctrl, pending, loop.WithInterval(cfg.TickInterval))
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Cell Touch")
	ebiten.SetWindowSize(game.CanvasWidth*cfg.WindowScale, game.CanvasHeight*cfg.WindowScale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
	if err := app.Close(); err != nil {
		log.Fatal(err)
	}
	log.Print(game.FormatSessions(ctrl.Sessions()))
}
