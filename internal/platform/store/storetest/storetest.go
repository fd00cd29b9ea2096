// Package storetest provides an in-memory store.DB for service and repo tests
package storetest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"crossword/internal/platform/store"
)

// Call is one statement the fake saw
type Call struct {
	Kind string // exec, query or queryrow
	SQL  string
	Args []any
}

// DB is a scripted store.DB. QueryFn and ExecFn answer statements; AcquireErr fails Conn
// before fn runs, wrapped in store.ErrAcquire like the real adapter does
type DB struct {
	QueryFn    func(sql string, args []any) (store.Rows, error)
	ExecFn     func(sql string, args []any) (store.CommandTag, error)
	AcquireErr error

	mu       sync.Mutex
	calls    []Call
	conns    int
	released int
	txs      int
}

var _ store.DB = (*DB)(nil)

// Calls returns a copy of every statement seen so far
func (d *DB) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// Conns is the number of successful checkouts; Released counts their returns
func (d *DB) Conns() (acquired, released int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conns, d.released
}

func (d *DB) record(kind, sql string, args []any) {
	d.mu.Lock()
	d.calls = append(d.calls, Call{Kind: kind, SQL: sql, Args: append([]any(nil), args...)})
	d.mu.Unlock()
}

// Exec implements store.RowQuerier
func (d *DB) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	d.record("exec", sql, args)
	if d.ExecFn == nil {
		return Tag(0), nil
	}
	return d.ExecFn(sql, args)
}

// Query implements store.RowQuerier
func (d *DB) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	d.record("query", sql, args)
	if d.QueryFn == nil {
		return NewRows(), nil
	}
	return d.QueryFn(sql, args)
}

// QueryRow implements store.RowQuerier; it reads the first row QueryFn yields
func (d *DB) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	d.record("queryrow", sql, args)
	var (
		rs  store.Rows = NewRows()
		err error
	)
	if d.QueryFn != nil {
		rs, err = d.QueryFn(sql, args)
	}
	return rowFunc(func(dest ...any) error {
		if err != nil {
			return err
		}
		defer rs.Close()
		if !rs.Next() {
			return errNoRows
		}
		return rs.Scan(dest...)
	})
}

// Tx implements store.TxRunner without any isolation
func (d *DB) Tx(_ context.Context, fn func(q store.RowQuerier) error) error {
	d.mu.Lock()
	d.txs++
	d.mu.Unlock()
	return fn(d)
}

// Conn implements store.ConnRunner; the checkout is returned even when fn panics
func (d *DB) Conn(_ context.Context, fn func(q store.RowQuerier) error) error {
	if d.AcquireErr != nil {
		return fmt.Errorf("%w: %w", store.ErrAcquire, d.AcquireErr)
	}
	d.mu.Lock()
	d.conns++
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.released++
		d.mu.Unlock()
	}()
	return fn(d)
}

var errNoRows = errors.New("no rows in result set")

type rowFunc func(dest ...any) error

func (f rowFunc) Scan(dest ...any) error { return f(dest...) }

// Rows is a canned result set
type Rows struct {
	data   [][]any
	idx    int
	tail   error
	closed bool
}

// NewRows builds a result set; each element is one row of column values
func NewRows(data ...[]any) *Rows { return &Rows{data: data, idx: -1} }

// FailAfter makes iteration stop with err once the rows run out
func (r *Rows) FailAfter(err error) *Rows { r.tail = err; return r }

// Closed reports whether Close was called
func (r *Rows) Closed() bool { return r.closed }

// Next implements store.Rows
func (r *Rows) Next() bool { r.idx++; return r.idx < len(r.data) }

// Err implements store.Rows
func (r *Rows) Err() error { return r.tail }

// Close implements store.Rows
func (r *Rows) Close() { r.closed = true }

// Columns implements store.Rows
func (r *Rows) Columns() []string { return nil }

// Scan assigns the current row into dest by reflection
func (r *Rows) Scan(dest ...any) error {
	if r.idx < 0 || r.idx >= len(r.data) {
		return errors.New("storetest: scan outside a row")
	}
	row := r.data[r.idx]
	if len(dest) != len(row) {
		return fmt.Errorf("storetest: scan %d dest into %d columns", len(dest), len(row))
	}
	for i := range dest {
		if err, ok := row[i].(error); ok {
			return err
		}
		dv := reflect.ValueOf(dest[i]).Elem()
		sv := reflect.ValueOf(row[i])
		if !sv.IsValid() {
			dv.Set(reflect.Zero(dv.Type()))
			continue
		}
		if !sv.Type().AssignableTo(dv.Type()) {
			if !sv.Type().ConvertibleTo(dv.Type()) {
				return fmt.Errorf("storetest: cannot scan %s into %s", sv.Type(), dv.Type())
			}
			sv = sv.Convert(dv.Type())
		}
		dv.Set(sv)
	}
	return nil
}

// Tag is a store.CommandTag reporting n rows
type Tag int64

// RowsAffected implements store.CommandTag
func (t Tag) RowsAffected() int64 { return int64(t) }

// String implements store.CommandTag
func (t Tag) String() string { return fmt.Sprintf("INSERT 0 %d", int64(t)) }
