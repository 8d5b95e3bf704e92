// Command village runs the interactive village builder.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/talgya/hamlet/internal/config"
	"github.com/talgya/hamlet/internal/console"
	"github.com/talgya/hamlet/internal/engine"
	"github.com/talgya/hamlet/internal/persistence"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	loadName := flag.String("load", "", "start from the named save")
	autosave := flag.String("autosave", "", "save under this name after every simulated day")
	flag.Parse()

	if err := run(*configPath, *loadName, *autosave); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, loadName, autosave string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.NewLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Storage ───────────────────────────────────────────────────────
	store, err := persistence.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()
	slog.Info("storage ready", "driver", cfg.Storage.Driver)

	// ── Village ───────────────────────────────────────────────────────
	var v *engine.Village
	if loadName != "" {
		v, err = persistence.LoadAndRestore(ctx, store, loadName)
		if errors.Is(err, persistence.ErrNotFound) {
			slog.Warn("save not found, founding a new village", "name", loadName)
			err = nil
		}
		if err != nil {
			return err
		}
	}
	if v == nil {
		v, err = engine.New(cfg.Village)
		if err != nil {
			return err
		}
		slog.Info("village founded", "name", v.Name, "food", v.Resources.Food, "max_workers", v.MaxWorkers)
	}

	// ── Day loop ──────────────────────────────────────────────────────
	eng := engine.NewEngine()
	if autosave != "" {
		eng.OnDay = func(v *engine.Village) {
			if err := store.SaveVillage(ctx, v, autosave); err != nil {
				slog.Error("autosave failed", "name", autosave, "error", err)
			}
		}
	}

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
		cancel()
		// A second signal while blocked on input exits at once.
		<-sigCh
		os.Exit(1)
	}()

	con := console.New(os.Stdin, os.Stdout, store, v, eng)
	if err := con.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("goodbye", "day", con.Village().DaysElapsed)
	return nil
}
