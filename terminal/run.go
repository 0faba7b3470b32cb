package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"

	"ebiten-platformer/session"
	"ebiten-platformer/systems"
)

// Factory builds a session reading input with a view of the given world size
type Factory func(input systems.Input, viewWidth, viewHeight float64) (*session.Session, error)

// App drives sessions on a terminal screen
type App struct {
	screen   tcell.Screen
	renderer *Renderer
	input    *KeyInput
	factory  Factory
	frame    time.Duration

	session *session.Session
}

// NewApp creates an app drawing at fps frames per second
func NewApp(screen tcell.Screen, renderer *Renderer, input *KeyInput, factory Factory, fps int) (*App, error) {
	if fps <= 0 {
		return nil, eris.Errorf("fps must be positive, got %d", fps)
	}
	return &App{
		screen:   screen,
		renderer: renderer,
		input:    input,
		factory:  factory,
		frame:    time.Second / time.Duration(fps),
	}, nil
}

// Session returns the running session, nil before Run
func (a *App) Session() *session.Session {
	return a.session
}

// Restart replaces the session with a fresh one sized to the screen
func (a *App) Restart() error {
	cols, rows := a.screen.Size()
	w, h := a.renderer.ViewSize(cols, rows)
	s, err := a.factory(a.input, w, h)
	if err != nil {
		return eris.Wrap(err, "failed to start session")
	}
	a.session = s
	return nil
}

// HandleEvent applies one terminal event. It returns false when the app should stop.
func (a *App) HandleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch a.input.HandleKey(ev) {
		case CommandQuit:
			return false, nil
		case CommandPause:
			if a.session.GameOver() {
				break
			}
			if a.session.Paused() {
				a.session.Resume()
			} else {
				a.session.Pause()
			}
		case CommandRestart:
			if a.session.GameOver() {
				return true, a.Restart()
			}
		}
	}
	return true, nil
}

// Tick runs one frame of the session and redraws the screen
func (a *App) Tick() {
	a.session.Frame()
	if a.session.GameOver() && !a.session.Paused() {
		a.session.Pause()
		a.session.Messages().Add("Game over, press r to restart", systems.MessageTypeAlert)
	}
	a.renderer.Draw(a.screen, a.session.Scene(), a.session.Status(), a.session.Messages())
	a.screen.Show()
}

// Run starts a session and blocks until the player quits or ctx is done
func (a *App) Run(ctx context.Context) error {
	if err := a.Restart(); err != nil {
		return err
	}

	// PollEvent blocks, so it gets its own goroutine
	events := make(chan tcell.Event, 32)
	go func() {
		defer close(events)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			cont, err := a.HandleEvent(ev)
			if err != nil {
				return err
			}
			if !cont {
				return nil
			}
		case <-ticker.C:
			a.Tick()
		}
	}
}
