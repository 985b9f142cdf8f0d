package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/Carmen-Shannon/oxy-scroll/app"
	"github.com/Carmen-Shannon/oxy-scroll/engine/window"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	verbose := flag.Bool("verbose", false, "log engine output to stderr")
	headless := flag.Bool("headless", false, "run the scripted scroll without a window or renderer")
	flag.Parse()

	if err := run(*configPath, *verbose, *headless); err != nil {
		fmt.Fprintln(os.Stderr, "oxy-scroll:", err)
		os.Exit(1)
	}
}

func run(configPath string, verbose, headless bool) error {
	// ── Config ──────────────────────────────────────────────────────
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Verbose = true
	}
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
	}

	// ── Headless ────────────────────────────────────────────────────
	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		a := app.NewApp(cfg)
		if err := a.Mount(); err != nil {
			return err
		}
		defer a.Unmount()
		return a.RunHeadless(ctx)
	}

	// ── Window ──────────────────────────────────────────────────────
	w, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	// ── Mount + run (blocks until the window closes) ───────────────
	a := app.NewApp(cfg, app.WithWindow(w))
	if err := a.Mount(); err != nil {
		return err
	}
	defer a.Unmount()
	return a.Run()
}
