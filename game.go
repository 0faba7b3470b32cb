package main

import (
	"errors"
	"io"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"ebiten-platformer/config"
	"ebiten-platformer/logging"
	"ebiten-platformer/remote"
	"ebiten-platformer/screens"
	"ebiten-platformer/session"
	"ebiten-platformer/systems"
)

// CommandSource opens the stream of remote commands. It is opened at most once.
type CommandSource func() (io.ReadCloser, error)

// Game implements ebiten.Game on top of a screen stack
type Game struct {
	cfg      config.Config
	logger   logging.Logger
	tileset  *screens.Tileset
	commands CommandSource
	stack    *screens.ScreenStack

	// every session drains the same queue, fed by one reader
	queue     *remote.Queue
	feedOnce  sync.Once
	feedError error
}

// NewGame creates the game showing the start menu. tileset and commands may be nil.
func NewGame(cfg config.Config, logger logging.Logger, tileset *screens.Tileset, commands CommandSource) *Game {
	g := &Game{
		cfg:      cfg,
		logger:   logger,
		tileset:  tileset,
		commands: commands,
		stack:    screens.NewScreenStack(),
		queue:    remote.NewQueue(),
	}
	g.stack.Push(screens.NewStartScreen(cfg.Window.Title))
	return g
}

// newGame replaces whatever is shown with a fresh session
func (g *Game) newGame() error {
	if err := g.startFeed(); err != nil {
		return err
	}

	s, err := session.New(session.Options{
		Config:   g.cfg,
		Input:    screens.KeyboardInput{},
		Logger:   g.logger,
		Commands: g.queue,
	})
	if err != nil {
		return err
	}
	s.Messages().Add("Collect the coins. Space jumps, X fires.", systems.MessageTypeNormal)

	g.stack.Replace(screens.NewGameScreen(s, g.tileset))
	return nil
}

// startFeed opens the command source on first use and streams it into the
// shared queue until it ends
func (g *Game) startFeed() error {
	g.feedOnce.Do(func() {
		if g.commands == nil {
			return
		}
		r, err := g.commands()
		if err != nil {
			g.feedError = err
			return
		}
		go func() {
			defer r.Close()
			if err := g.queue.Feed(r); err != nil {
				g.logger.Warn("remote command stream stopped", "error", err)
			}
		}()
	})
	return g.feedError
}

// Update updates the game state.
func (g *Game) Update() error {
	err := g.stack.Update()
	switch {
	case errors.Is(err, screens.ErrNewGame):
		return g.newGame()
	case errors.Is(err, screens.ErrQuit):
		return ebiten.Termination
	}
	return err
}

// Draw draws the game screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.stack.Draw(screen)
}

// Layout implements ebiten.Game's Layout.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GetScreenDimensions()
}
