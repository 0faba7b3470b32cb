package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"

	"ebiten-platformer/components"
	"ebiten-platformer/config"
	"ebiten-platformer/ecs"
	"ebiten-platformer/logging"
	"ebiten-platformer/screens"
	"ebiten-platformer/session"
	"ebiten-platformer/systems"
	"ebiten-platformer/terminal"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file")
	tty := flag.Bool("tty", false, "Play in the terminal instead of a window")
	headless := flag.Int("headless", 0, "Run this many simulation steps without a display and print the result")
	commands := flag.String("commands", "", "File of JSON remote commands to apply while playing, - for stdin")
	viewTileset := flag.Bool("view-tileset", false, "Browse the configured tileset")
	seed := flag.Int64("seed", 0, "Override the level generation seed")
	verbose := flag.Bool("v", false, "Log debug messages")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	// the terminal owns stdout in tty mode
	logOut := io.Writer(os.Stderr)
	if *tty {
		logOut = io.Discard
	}
	logger := logging.NewText(logOut, level)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(logger, err)
	}
	if *seed != 0 {
		cfg.Generation.Seed = *seed
	}

	switch {
	case *viewTileset:
		err = runTilesetViewer(cfg)
	case *headless > 0:
		err = runHeadless(cfg, logger, *headless, *commands)
	case *tty:
		err = runTerminal(cfg, logger)
	default:
		err = runWindow(cfg, logger, *commands)
	}
	if err != nil {
		fatal(logger, err)
	}
}

func fatal(logger logging.Logger, err error) {
	logger.Error("fatal", "error", eris.ToString(err, true))
	os.Exit(1)
}

func openCommands(path string) CommandSource {
	switch path {
	case "":
		return nil
	case "-":
		return func() (io.ReadCloser, error) { return io.NopCloser(os.Stdin), nil }
	}
	return func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		return f, eris.Wrap(err, "failed to open command file")
	}
}

func loadTileset(cfg config.Config, logger logging.Logger) *screens.Tileset {
	if cfg.Assets.Tileset == "" {
		return nil
	}
	tileset, err := screens.NewTileset(cfg.Assets.Tileset, cfg.Assets.TilesetCell)
	if err != nil {
		logger.Warn("tileset unavailable, drawing shapes", "error", err)
		return nil
	}
	return tileset
}

func runWindow(cfg config.Config, logger logging.Logger, commands string) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
	// one Update per displayed frame; the session's loop does its own fixed stepping
	ebiten.SetTPS(ebiten.SyncWithFPS)
	ebiten.SetRunnableOnUnfocused(true)

	game := NewGame(cfg, logger, loadTileset(cfg, logger), openCommands(commands))
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return eris.Wrap(err, "game stopped")
	}
	return nil
}

func runTilesetViewer(cfg config.Config) error {
	if cfg.Assets.Tileset == "" {
		return eris.New("no tileset configured, set assets.tileset")
	}
	tileset, err := screens.NewTileset(cfg.Assets.Tileset, cfg.Assets.TilesetCell)
	if err != nil {
		return err
	}
	viewer := NewTilesetViewer(tileset, cfg.Assets.Tileset, 36)
	ebiten.SetWindowSize(viewer.Layout(0, 0))
	ebiten.SetWindowTitle("Tileset Viewer - " + cfg.Assets.Tileset)
	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func runTerminal(cfg config.Config, logger logging.Logger) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return eris.Wrap(err, "failed to open terminal")
	}
	if err := scr.Init(); err != nil {
		return eris.Wrap(err, "failed to init terminal")
	}
	defer scr.Fini()

	factory := func(input systems.Input, w, h float64) (*session.Session, error) {
		return session.New(session.Options{Config: cfg, Input: input, Logger: logger, ViewWidth: w, ViewHeight: h})
	}
	app, err := terminal.NewApp(scr, terminal.NewRenderer(8, 16), terminal.NewKeyInput(terminal.DefaultHold, nil), factory, 60)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return app.Run(ctx)
}

// runHeadless steps a session with no input and reports where everything ended up
func runHeadless(cfg config.Config, logger logging.Logger, steps int, commands string) error {
	s, err := session.New(session.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	if src := openCommands(commands); src != nil {
		r, err := src()
		if err != nil {
			return err
		}
		err = s.Commands.Feed(r)
		r.Close()
		if err != nil {
			return err
		}
	}

	s.Step(steps)

	fmt.Printf("steps=%d entities=%d game_over=%v\n", s.Loop.TotalSteps(), s.World.EntityCount(), s.GameOver())
	for _, e := range s.World.Query(components.PositionID).Entities() {
		p := ecs.MustGet[*components.Position](e)
		fmt.Printf("%s %s x=%.2f y=%.2f\n", e.Type, e.ID, p.X, p.Y)
	}
	return nil
}
