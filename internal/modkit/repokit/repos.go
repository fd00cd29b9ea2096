// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"context"

	"crossword/internal/platform/store"
)

// Queryer is the read and write surface a bound repo runs its statements on
type Queryer = store.RowQuerier

type (
	// ConnRunner checks one pooled connection out for the duration of a function
	ConnRunner = store.ConnRunner

	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row

	// CommandTag is the result of a command that modifies data
	CommandTag = store.CommandTag
)

// WithConn checks a connection out of c and runs fn with repo T bound to it
func WithConn[T any](ctx context.Context, c ConnRunner, b Binder[T], fn func(T) error) error {
	return c.Conn(ctx, func(q Queryer) error { return fn(MustBind(b, q)) })
}
