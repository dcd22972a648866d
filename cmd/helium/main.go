package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"helium/internal/config"
	"helium/internal/game"
	"helium/internal/logging"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	scene := flag.String("scene", "", "boot scene ref, overrides scenes.boot")
	headless := flag.Bool("headless", false, "run without opening a window")
	flag.Parse()

	path, err := resolveConfigPath(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "helium: %v\n", err)
		os.Exit(1)
	}

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			_ = os.Chdir(execDir)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "helium: %v\n", err)
		os.Exit(1)
	}
	if *scene != "" {
		cfg.Scenes.Boot = *scene
	}

	logger := logging.New(cfg.Logging, version)
	logger.Info("starting", "boot", cfg.Scenes.Boot, "scenes", cfg.Scenes.Dir, "headless", *headless)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := game.New(cfg, logger)
	run := g.Run
	if *headless {
		run = g.RunHeadless
	}
	if err := run(ctx); err != nil {
		logger.Error("exited with error", "error", err)
		os.Exit(1)
	}
}

// resolveConfigPath pins a -config path to the directory helium was started
// from, before main moves to the executable's directory.
func resolveConfigPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving config path: %w", err)
	}
	return abs, nil
}
