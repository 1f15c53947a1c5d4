package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/logging"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
	"github.com/vancomm/minefield/internal/tui"
)

var (
	log = logrus.New()

	seed    string
	logFile string
)

func init() {
	const usage = "field as width:height:mines"
	flag.StringVar(&seed, "game", "", usage)
	flag.StringVar(&seed, "g", "", usage+" (shorthand)")
	flag.StringVar(&logFile, "log", "minefield.log", "log file")
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}

	params := cfg.Game
	if seed != "" {
		p, err := mines.ParseSeed(seed, cfg.MaxCells)
		if err != nil {
			fail(err)
		}
		params = *p
	}

	// the terminal belongs to the screen, so logs go to a file
	if cfg.LogFile != "" {
		logFile = cfg.LogFile
	}
	if err := logging.SetupLogrus(log, cfg.Development, logFile); err != nil {
		fail(err)
	}
	mines.Log = log

	s, err := session.New(params, tui.Geometry, mines.NewRand())
	if err != nil {
		fail(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fail(err)
	}
	if err := screen.Init(); err != nil {
		fail(err)
	}
	screen.EnableMouse()
	defer screen.Fini()

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	log.WithField("params", params.Seed()).Info("starting up")

	if err := tui.New(screen, s, log).Run(ctx); err != nil {
		log.WithError(err).Error("terminal ui stopped")
	}
}
