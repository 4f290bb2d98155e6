package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
	"github.com/iburimskiy/portfolio-backdrop/internal/game"
	"github.com/iburimskiy/portfolio-backdrop/internal/term"
	"github.com/iburimskiy/portfolio-backdrop/internal/theme"
)

var (
	configFlag  = flag.String("config", "", "YAML settings file")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	termFlag    = flag.Bool("term", false, "Render in the terminal instead of a window")
	audioFlag   = flag.String("audio", "", "Soundtrack that drives the wave band (wav, mp3, flac)")
	seedFlag    = flag.Int64("seed", 0, "Particle seed; 0 picks one from the clock")
)

func main() {
	flag.Parse()

	settings, err := loadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	closeLog := setupLogging(settings.Verbose, *termFlag)
	defer closeLog()

	store := theme.OpenStore(config.AppName)

	if *termFlag {
		err = runTerminal(settings, store)
	} else {
		err = runWindow(settings, store)
	}
	if err != nil {
		closeLog()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSettings reads -config over the defaults and applies flag overrides.
func loadSettings() (*config.Settings, error) {
	settings := config.Default()
	if *configFlag != "" {
		s, err := config.Load(*configFlag)
		if err != nil {
			return nil, err
		}
		settings = s
	}

	if *verboseFlag {
		settings.Verbose = true
	}
	if *audioFlag != "" {
		settings.Soundtrack = *audioFlag
	}
	if *seedFlag != 0 {
		settings.Seed = *seedFlag
	}
	return settings, nil
}

// setupLogging silences the log unless verbose. The terminal backend owns
// stderr, so its log goes to a file in the temp dir instead.
func setupLogging(verbose, terminal bool) func() {
	if !verbose {
		log.SetOutput(io.Discard)
		return func() {}
	}
	if !terminal {
		return func() {}
	}

	path := filepath.Join(os.TempDir(), config.AppName+".log")
	f, err := os.Create(path)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	log.Printf("[Main] Logging to %s", path)
	return func() { f.Close() }
}

func runWindow(settings *config.Settings, store *theme.Store) error {
	ebiten.SetWindowSize(settings.Width, settings.Height)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	g, err := game.New(settings, store)
	if err != nil {
		return err
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func runTerminal(settings *config.Settings, store *theme.Store) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	r, err := term.New(screen, settings, store)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
