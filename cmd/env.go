package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/config"
	"github.com/abhisek/kotoba/internal/content"
	"github.com/abhisek/kotoba/internal/engine"
	"github.com/abhisek/kotoba/internal/logging"
	"github.com/abhisek/kotoba/internal/schedule"
	"github.com/abhisek/kotoba/internal/store"
)

// env holds what a command needs once flags and config are resolved.
type env struct {
	cfg     *config.Config
	log     *logrus.Logger
	store   *store.Store
	closers []io.Closer
}

// setup loads config, builds the logger and opens the store. When toFile is
// set the logger writes to the log file because the TUI owns the terminal.
func setup(cmd *cobra.Command, toFile bool) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	if toFile {
		logger, closer, err := logging.NewFile(cfg.Log)
		if err != nil {
			return nil, err
		}
		e.log = logger
		e.closers = append(e.closers, closer)
	} else {
		logger, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return nil, err
		}
		e.log = logger
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closers = append([]io.Closer{st}, e.closers...)
	e.log.WithField("db", dbPath).Debug("store opened")
	return e, nil
}

// Close releases the store and log file.
func (e *env) Close() {
	for _, c := range e.closers {
		_ = c.Close()
	}
}

// resolveDBPath returns the configured database path, falling back to the
// default XDG location.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.DB.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadPack reads the configured content pack.
func (e *env) loadPack() (*content.Pack, error) {
	pack, err := content.Load(e.cfg.Content.Path)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return pack, nil
}

// loadEngine restores the saved game into a headless engine. Timed quiz
// feedback never fires because nothing advances the virtual clock.
func (e *env) loadEngine(ctx context.Context, pack *content.Pack) (*engine.Engine, error) {
	var snapData *store.SnapshotData
	snap, err := e.store.SnapshotRepo().Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap != nil {
		snapData = &snap.Data
	}
	return engine.New(engine.Deps{
		Words:     pack.WordCatalog(),
		Nodes:     pack.NodeCatalog(),
		Scheduler: schedule.NewManual(time.Now()),
		Timing:    e.cfg.Timing(),
		Economy:   e.cfg.EconomyConfig(),
		Snapshot:  snapData,
		Logger:    e.log,
	}), nil
}

// saveEngine writes the engine state as a new snapshot.
func (e *env) saveEngine(ctx context.Context, eng *engine.Engine) error {
	snap := &store.Snapshot{Timestamp: time.Now(), Data: eng.Snapshot()}
	if err := e.store.SnapshotRepo().Save(ctx, snap); err != nil {
		return err
	}
	if keep := e.cfg.Save.KeepSnapshots; keep > 0 {
		if err := e.store.SnapshotRepo().Prune(ctx, keep); err != nil {
			return fmt.Errorf("prune snapshots: %w", err)
		}
	}
	return nil
}
