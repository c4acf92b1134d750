package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/rapport/internal/app"
	"github.com/alexanderramin/rapport/internal/cli"
	"github.com/alexanderramin/rapport/internal/config"
	"github.com/alexanderramin/rapport/internal/logging"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logging.Preinit(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var container *app.Container
	defer func() {
		if container == nil {
			return
		}
		if err := container.Shutdown(); err != nil {
			slog.Warn("shutdown failed", "error", err)
		}
	}()

	a := &cli.App{
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	// Setup runs after flag parsing so --config is known.
	a.Setup = func(configPath string) error {
		required := configPath != ""
		if !required {
			configPath = config.DefaultPath()
			if env := os.Getenv("RAPPORT_CONFIG"); env != "" {
				configPath, required = env, true
			}
		}
		cfg, err := config.Load(configPath, required)
		if err != nil {
			return err
		}
		logger := logging.Init(os.Stderr, cfg.Log)

		container = app.New(cfg, logger)
		if a.Contacts, err = container.Contacts(); err != nil {
			return err
		}
		if a.Assistant, err = container.Assistant(); err != nil {
			return err
		}
		a.Populate = container.Populate
		a.Serve = container.Serve
		return nil
	}

	return cli.NewRootCmd(a).ExecuteContext(ctx)
}
