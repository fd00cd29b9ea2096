package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"crossword/internal/core/guardian"
	"crossword/internal/platform/logger"
	ptime "crossword/internal/platform/time"
	"crossword/internal/services/crosswords/domain"
)

// report is what one run did
type report struct {
	Files    int
	Skipped  int
	Stored   int
	Batches  int
	Prepared int
}

type importer struct {
	w      domain.Writer // nil on a dry run
	series string
	batch  int
	dryRun bool
}

// listJSON returns every *.json directly under dir in name order
func listJSON(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

func toCrossword(r guardian.Record) domain.Crossword {
	return domain.Crossword{ID: r.ID, Series: r.Series, Date: ptime.NewDate(r.Date), CrosswordJSON: r.JSON}
}

// run reads files in order and stores them batch by batch. A file that fails to parse
// is skipped with a warning; a failing batch stops the run and earlier batches stay stored
func (im *importer) run(ctx context.Context, files []string) (report, error) {
	log := logger.C(ctx)
	rep := report{Files: len(files)}
	if im.batch < 1 {
		im.batch = 1
	}

	pending := make([]domain.Crossword, 0, im.batch)
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		rep.Batches++
		rep.Prepared += len(pending)
		if im.dryRun {
			log.Info().Int("batch", rep.Batches).Int("count", len(pending)).Msg("dry run: batch not stored")
			pending = pending[:0]
			return nil
		}
		n, err := im.w.Store(ctx, pending)
		if err != nil {
			return fmt.Errorf("batch %d starting at %s: %w", rep.Batches, pending[0].ID, err)
		}
		rep.Stored += n
		log.Info().Int("batch", rep.Batches).Int("stored", n).Msg("batch stored")
		pending = pending[:0]
		return nil
	}

	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			return rep, fmt.Errorf("read %s: %w", f, err)
		}
		rec, err := guardian.ToRecord(raw, im.series)
		if err != nil {
			rep.Skipped++
			log.Warn().Err(err).Str("file", f).Msg("skipping unparseable crossword")
			continue
		}
		pending = append(pending, toCrossword(rec))
		if len(pending) == im.batch {
			if err := flush(); err != nil {
				return rep, err
			}
		}
	}
	return rep, flush()
}
