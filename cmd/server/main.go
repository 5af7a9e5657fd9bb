package main

import (
	"fmt"
	"os"

	"collabhub/internal/config"
	"collabhub/internal/observ"
	"collabhub/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.New()

	logger, err := observ.NewLogger(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	defer srv.Close()

	return srv.Run()
}
