package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/eggcatch/internal/config"
	"github.com/tomz197/eggcatch/internal/logging"
	"github.com/tomz197/eggcatch/internal/loop"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	tuning, err := config.FromEnv()
	if err != nil {
		return err
	}

	// The game owns stdout, so logs only go to a file when one is named.
	logger, closeLog, err := logging.OpenFile(config.GetEnv("EGGCATCH_LOG", ""), config.GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting local game", "fps", tuning.Display.FPS)
	reader := bufio.NewReader(os.Stdin)
	return loop.Run(ctx, reader, os.Stdout, loop.Options{
		Tuning: tuning,
		Logger: logger,
	})
}
