package repokit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"crossword/internal/platform/store"
	kit "crossword/internal/platform/testkit"
)

type fakeQ struct{ name string }

func (f *fakeQ) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (f *fakeQ) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (f *fakeQ) QueryRow(context.Context, string, ...any) store.Row            { return nil }

// fakeDB hands out a named Queryer per scope; crossword calls only use conn
type fakeDB struct {
	fakeQ
	conns, txs int
	err        error
}

func (f *fakeDB) Conn(_ context.Context, fn func(Queryer) error) error {
	f.conns++
	if f.err != nil {
		return f.err
	}
	return fn(&fakeQ{name: "conn"})
}

func (f *fakeDB) Tx(_ context.Context, fn func(Queryer) error) error {
	f.txs++
	return fn(&fakeQ{name: "tx"})
}

var _ store.DB = (*fakeDB)(nil)

type repo struct{ q Queryer }

var binder = BindFunc[repo](func(q Queryer) repo { return repo{q: q} })

func TestBinder(t *testing.T) {
	t.Parallel()
	q := &fakeQ{}
	if got := MustBind[repo](binder, q); got.q != q {
		t.Fatalf("MustBind did not bind the given Queryer")
	}
	if RequireQueryer(q) != q {
		t.Fatalf("RequireQueryer changed the Queryer")
	}
	kit.MustPanic(t, func() { _ = RequireQueryer(nil) })
	kit.MustPanic(t, func() { _ = MustBind[repo](binder, nil) })
}

func TestWithConn(t *testing.T) {
	t.Parallel()
	db := &fakeDB{}
	ctx := context.Background()

	var seen string
	err := WithConn(ctx, db, binder, func(r repo) error {
		seen = r.q.(*fakeQ).name
		return nil
	})
	if err != nil || seen != "conn" || db.conns != 1 {
		t.Fatalf("WithConn err=%v seen=%q conns=%d", err, seen, db.conns)
	}

	boom := errors.New("boom")
	err = WithConn(ctx, db, binder, func(repo) error { return boom })
	if !errors.Is(err, boom) || db.conns != 2 || db.txs != 0 {
		t.Fatalf("WithConn err=%v conns=%d txs=%d", err, db.conns, db.txs)
	}

	acquire := fmt.Errorf("%w: pool closed", store.ErrAcquire)
	db.err = acquire
	called := false
	err = WithConn(ctx, db, binder, func(repo) error { called = true; return nil })
	if !store.IsAcquire(err) || called {
		t.Fatalf("acquire failure: err=%v called=%v", err, called)
	}
}

type fakePinger struct {
	ctx context.Context
	err error
}

func (f *fakePinger) Ping(ctx context.Context) error { f.ctx = ctx; return f.err }

func panicMsg(fn func()) (msg string) {
	defer func() {
		switch v := recover().(type) {
		case string:
			msg = v
		case error:
			msg = v.Error()
		}
	}()
	fn()
	return ""
}

func TestMustPing(t *testing.T) {
	t.Parallel()

	if msg := panicMsg(func() { MustPing(context.Background(), "pg", nil) }); msg != "pg: nil dependency" {
		t.Fatalf("nil dependency panic = %q", msg)
	}

	p := &fakePinger{}
	start := time.Now()
	MustPing(context.Background(), "pg", p)
	dl, ok := p.ctx.Deadline()
	if !ok || dl.Sub(start) > DefaultPingTimeout+time.Second {
		t.Fatalf("default deadline = %v ok=%v", dl.Sub(start), ok)
	}

	parent, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	MustPing(parent, "pg", p)
	want, _ := parent.Deadline()
	if got, _ := p.ctx.Deadline(); !got.Equal(want) {
		t.Fatalf("existing deadline not honored: %v vs %v", got, want)
	}

	p.err = errors.New("connection refused")
	if msg := panicMsg(func() { MustPing(context.Background(), "pg", p) }); !strings.Contains(msg, "pg ping failed: connection refused") {
		t.Fatalf("ping failure panic = %q", msg)
	}
}

type fakeGuard struct{ err error }

func (f fakeGuard) Guard(context.Context) error { return f.err }

func TestMustGuard(t *testing.T) {
	t.Parallel()
	MustGuard(context.Background(), fakeGuard{})
	msg := panicMsg(func() { MustGuard(context.Background(), fakeGuard{err: errors.New("pg: down")}) })
	if !strings.Contains(msg, "dependency guard failed: pg: down") {
		t.Fatalf("guard panic = %q", msg)
	}
}
