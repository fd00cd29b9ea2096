// Package service implements the crossword reader and writer ports
package service

import (
	"context"
	"fmt"

	"crossword/internal/core/guardian"
	"crossword/internal/modkit/repokit"
	perr "crossword/internal/platform/errors"
	"crossword/internal/platform/logger"
	"crossword/internal/platform/offload"
	"crossword/internal/platform/store"
	"crossword/internal/services/crosswords/domain"
	"crossword/internal/services/crosswords/repo"
)

// Svc runs every call on the offload pool with its own pooled connection.
// Nothing is shared between calls, so concurrent use is safe
type Svc struct {
	db     repokit.ConnRunner
	binder repokit.Binder[repo.Storage]
	pool   *offload.Pool
	log    logger.Logger
}

var _ domain.ServicePort = (*Svc)(nil)

// New constructs the crossword service
func New(db repokit.ConnRunner, binder repokit.Binder[repo.Storage], pool *offload.Pool, log logger.Logger) *Svc {
	if db == nil {
		panic("crosswords.Service requires a non-nil ConnRunner")
	}
	if binder == nil {
		panic("crosswords.Service requires a non-nil Storage binder")
	}
	if pool == nil {
		panic("crosswords.Service requires an offload pool")
	}
	return &Svc{db: db, binder: binder, pool: pool, log: log}
}

// run hands fn to the pool; fn gets a connection checked out for just this call
func run[T any](ctx context.Context, s *Svc, fn func(context.Context, repo.Storage) (T, error)) (T, error) {
	return offload.Do(ctx, s.pool, func(ctx context.Context) (T, error) {
		var out T
		err := repokit.WithConn(ctx, s.db, s.binder, func(st repo.Storage) error {
			var err error
			out, err = fn(ctx, st)
			return err
		})
		return out, err
	})
}

// infra reports failures outside the statement itself: checkout, the server
// refusing sessions, the pool giving up on the caller, or a panic in the job
func infra(err error) bool {
	return store.IsAcquire(err) || perr.IsConnectionUnavailable(err) ||
		domain.IsInternal(err) || perr.IsCode(err, perr.ErrorCodePanic)
}

// internal logs err and returns it as an Internal failure labelled with op
func (s *Svc) internal(ctx context.Context, op, series, id string, err error, msg string) error {
	ev := logger.From(ctx, s.log).Error().Err(err).Str("op", op)
	if series != "" {
		ev = ev.Str("series", series)
	}
	if id != "" {
		ev = ev.Str("id", id)
	}
	if code, ok := perr.DBErrorCode(err); ok {
		ev = ev.Str("db_code", code.String())
	}
	ev.Msg(msg)
	return perr.WithOp(domain.Internal(err, msg), op)
}

// IDsForSeries implements domain.Reader; an unknown series is an empty list
func (s *Svc) IDsForSeries(ctx context.Context, series string) ([]string, error) {
	ids, err := run(ctx, s, func(ctx context.Context, st repo.Storage) ([]string, error) {
		return st.IDs(ctx, series)
	})
	if err != nil {
		return nil, s.internal(ctx, "ids_for_series", series, "", err, "get ids for series "+series)
	}
	return ids, nil
}

// MetadataForSeries implements domain.Reader
func (s *Svc) MetadataForSeries(ctx context.Context, series string) ([]domain.Metadata, error) {
	ms, err := run(ctx, s, func(ctx context.Context, st repo.Storage) ([]domain.Metadata, error) {
		return st.Metadata(ctx, series)
	})
	if err != nil {
		return nil, s.internal(ctx, "metadata_for_series", series, "", err, "get metadata for series "+series)
	}
	return ms, nil
}

// BySeriesAndID implements domain.Reader. Past checkout, a query failure and
// a missing row both come back as NotFound; a stored document that no longer
// parses is Internal
func (s *Svc) BySeriesAndID(ctx context.Context, id, series string) (guardian.Crossword, error) {
	doc, err := run(ctx, s, func(ctx context.Context, st repo.Storage) ([]byte, error) {
		return st.Document(ctx, id, series)
	})
	if err != nil {
		if infra(err) {
			return guardian.Crossword{}, s.internal(ctx, "by_series_and_id", series, id, err,
				fmt.Sprintf("get crossword %s in series %s", id, series))
		}
		logger.From(ctx, s.log).Warn().Err(err).Str("op", "by_series_and_id").Str("series", series).Str("id", id).
			Msg("crossword lookup missed")
		return guardian.Crossword{}, perr.WithOp(domain.NotFound(id, err), "by_series_and_id")
	}

	c, err := guardian.Parse(doc)
	if err != nil {
		return guardian.Crossword{}, s.internal(ctx, "by_series_and_id", series, id, err,
			"parse stored crossword "+id)
	}
	return c, nil
}

// Store implements domain.Writer with a single multi row insert. Empty input
// returns 0 without touching the pool or the database
func (s *Svc) Store(ctx context.Context, xs []domain.Crossword) (int, error) {
	if len(xs) == 0 {
		return 0, nil
	}
	if len(xs) > repo.MaxInsertRows {
		return 0, s.internal(ctx, "store", "", "", nil,
			fmt.Sprintf("store %d crosswords: more than %d in one call", len(xs), repo.MaxInsertRows))
	}

	n, err := run(ctx, s, func(ctx context.Context, st repo.Storage) (int64, error) {
		return st.Insert(ctx, xs)
	})
	if err != nil {
		if perr.IsDuplicateKey(err) {
			logger.From(ctx, s.log).Warn().Err(err).Str("op", "store").Int("count", len(xs)).Msg("duplicate crossword id")
			return 0, perr.WithOp(domain.Internal(err, fmt.Sprintf("store %d crosswords", len(xs))), "store")
		}
		return 0, s.internal(ctx, "store", "", "", err, fmt.Sprintf("store %d crosswords", len(xs)))
	}
	return int(n), nil
}
