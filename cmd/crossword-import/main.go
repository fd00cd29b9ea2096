// crossword-import loads a directory of Guardian crossword JSON files into the store
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crossword/internal/modkit"
	"crossword/internal/modkit/module"
	"crossword/internal/platform/config"
	"crossword/internal/platform/logger"
	"crossword/internal/platform/store"

	"crossword/internal/services/crosswords/domain"
	cwmod "crossword/internal/services/crosswords/module"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
)

type flags struct {
	dir    string
	series string
	batch  int
	dryRun bool
}

func main() {
	var f flags
	flag.StringVar(&f.dir, "dir", "", "directory of Guardian crossword *.json files")
	flag.StringVar(&f.series, "series", "", "series for every file; default is each document's crosswordType")
	flag.IntVar(&f.batch, "batch", 100, "crosswords per insert; each batch is all or nothing")
	flag.BoolVar(&f.dryRun, "dry-run", false, "parse and batch without touching the database")
	flag.Parse()

	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = "crossword-import"
	}
	logger.Init(opt)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx = logger.WithRun(ctx, uuid.NewString())
	err := run(ctx, f)
	stop()
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("import aborted")
		os.Exit(1)
	}
}

func (f flags) check() error {
	if f.dir == "" {
		return errors.New("-dir is required")
	}
	if f.batch < 1 || f.batch > cwmod.MaxBatch {
		return fmt.Errorf("-batch must be between 1 and %d", cwmod.MaxBatch)
	}
	return nil
}

func run(ctx context.Context, f flags) error {
	if err := f.check(); err != nil {
		return err
	}
	log := logger.C(ctx)

	files, err := listJSON(f.dir)
	if err != nil {
		return fmt.Errorf("list %s: %w", f.dir, err)
	}
	im := &importer{series: f.series, batch: f.batch, dryRun: f.dryRun}

	if !f.dryRun {
		root := config.New()
		st, err := store.Open(ctx,
			store.Config{AppName: "crossword-import", PG: store.PGConfigFrom(root.Prefix("SERVICE_PGSQL_"))},
			store.WithLogger(*logger.Get()),
		)
		if err != nil {
			return fmt.Errorf("store.Open: %w", err)
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close store")
			}
		}()
		if err := st.Guard(ctx); err != nil {
			return fmt.Errorf("store guard: %w", err)
		}

		m := cwmod.New(modkit.Deps{Log: *logger.Get(), Cfg: root, PG: st.PG})
		im.w = module.MustPortsOf[domain.Writer](m)
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = m.Drain(dctx)
		}()
	}

	rep, err := im.run(ctx, files)
	log.Info().Int("files", rep.Files).Int("skipped", rep.Skipped).Int("batches", rep.Batches).
		Int("prepared", rep.Prepared).Int("stored", rep.Stored).Bool("dry_run", f.dryRun).Msg("import finished")
	return err
}
