// Package repo holds the SQL for the crossword table
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"crossword/internal/modkit/repokit"
	"crossword/internal/platform/store"
	ptime "crossword/internal/platform/time"
	"crossword/internal/services/crosswords/domain"
)

const (
	sqlIDs      = `SELECT id FROM crossword WHERE series = $1`
	sqlMetadata = `SELECT id, series, date FROM crossword WHERE series = $1`
	sqlDocument = `SELECT crossword_json FROM crossword WHERE id = $1 AND series = $2 LIMIT 1`
	sqlInsert   = `INSERT INTO crossword (id, series, date, crossword_json) VALUES `
)

// Storage runs exactly one statement per call on the bound Queryer
type Storage interface {
	IDs(ctx context.Context, series string) ([]string, error)
	Metadata(ctx context.Context, series string) ([]domain.Metadata, error)
	// Document returns perr.ErrNotFound when no row matches
	Document(ctx context.Context, id, series string) (json.RawMessage, error)
	Insert(ctx context.Context, xs []domain.Crossword) (int64, error)
}

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG returns a binder for the postgres repo
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

func (s *pg) IDs(ctx context.Context, series string) ([]string, error) {
	return store.Many(ctx, s.q, func(r store.Row) (string, error) {
		var id string
		err := r.Scan(&id)
		return id, err
	}, sqlIDs, series)
}

func (s *pg) Metadata(ctx context.Context, series string) ([]domain.Metadata, error) {
	return store.Many(ctx, s.q, func(r store.Row) (domain.Metadata, error) {
		var (
			m domain.Metadata
			d time.Time
		)
		if err := r.Scan(&m.ID, &m.Series, &d); err != nil {
			return m, err
		}
		m.Date = ptime.NewDate(d)
		return m, nil
	}, sqlMetadata, series)
}

func (s *pg) Document(ctx context.Context, id, series string) (json.RawMessage, error) {
	return store.One(ctx, s.q, func(r store.Row) (json.RawMessage, error) {
		var doc []byte
		err := r.Scan(&doc)
		return doc, err
	}, sqlDocument, id, series)
}

// insertable is the write side projection of one crossword; it only lives
// while the insert statement is built and shares the entity's document bytes
type insertable struct {
	id     string
	series string
	date   time.Time
	doc    json.RawMessage
}

func toInsertable(c *domain.Crossword) insertable {
	return insertable{id: c.ID, series: c.Series, date: ptime.DateOf(c.Date.Time), doc: c.CrosswordJSON}
}

const insertCols = 4

// MaxInsertRows is the most rows one insert can carry under the 65535 bind parameter limit
const MaxInsertRows = 65535 / insertCols

// buildInsert renders one multi row insert; no ON CONFLICT, a duplicate id fails the whole statement
func buildInsert(xs []domain.Crossword) (string, []any) {
	var sb strings.Builder
	sb.Grow(len(sqlInsert) + len(xs)*24)
	sb.WriteString(sqlInsert)

	args := make([]any, 0, len(xs)*insertCols)
	for i := range xs {
		row := toInsertable(&xs[i])
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*insertCols + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d)", base, base+1, base+2, base+3)
		// text form; postgres parses it into jsonb
		args = append(args, row.id, row.series, row.date, string(row.doc))
	}
	return sb.String(), args
}

func (s *pg) Insert(ctx context.Context, xs []domain.Crossword) (int64, error) {
	if len(xs) == 0 {
		return 0, nil
	}
	sql, args := buildInsert(xs)
	tag, err := s.q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
