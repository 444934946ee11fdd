package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Cell-Touch/internal/assets"
	"github.com/Garsondee/Cell-Touch/internal/config"
	"github.com/Garsondee/Cell-Touch/internal/game"
	"github.com/Garsondee/Cell-Touch/internal/loop"
	"github.com/Garsondee/Cell-Touch/internal/terminal"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	cfg.BindFlags(flag.CommandLine)
	logPath := flag.String("log", "", "write log output to this file (the screen is in use)")
	flag.Parse()

	// Log lines would scribble over the screen, so they go to a file or nowhere.
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	events := game.NewEventLog(256, cfg.Verbose)
	if cfg.Verbose {
		events.Subscribe(func(e game.EventLogEntry) { log.Print(e) })
	}
	seed := cfg.SeedOrNow()
	log.Printf("[Session] seed=%d", seed)
	ctrl := game.NewController(rand.New(rand.NewSource(seed)), game.WithEventLog(events)) // #nosec G404 -- gameplay RNG

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "screen init: %v\n", err)
		os.Exit(1)
	}

	pending := assets.Load(ctx, assets.Sources{Title: cfg.TitleImage, Background: cfg.BackgroundImage})
	runErr := terminal.NewUI(screen, ctrl).Run(ctx, pending, loop.WithInterval(cfg.TickInterval))
	screen.Fini()

	if runErr != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
	fmt.Print(game.FormatSessions(ctrl.Sessions()))
}
