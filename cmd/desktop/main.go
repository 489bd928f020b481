package main

import (
	"errors"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tomz197/spacewaves/internal/config"
	"github.com/tomz197/spacewaves/internal/desktop"
	gameconfig "github.com/tomz197/spacewaves/internal/loop/config"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "desktop"})
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal("failed to load .env", "err", err)
	}
	if level, err := log.ParseLevel(config.GetEnv("SPACEWAVES_LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}

	opts := desktop.Options{Logger: logger}
	// A fixed seed replays the same enemy waves.
	if seed := config.GetEnvInt("SPACEWAVES_SEED", 0); seed != 0 {
		opts.Rand = rand.New(rand.NewSource(int64(seed)))
		logger.Info("using fixed seed", "seed", seed)
	}
	game := desktop.New(opts)

	ebiten.SetWindowSize(gameconfig.GameWidth, gameconfig.GameHeight)
	ebiten.SetWindowTitle("Space Waves")
	ebiten.SetTPS(ebiten.DefaultTPS)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game error", "err", err)
	}
}
