package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"crossword/internal/platform/config"
	"crossword/internal/platform/store/pg"
	"crossword/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

// fakeOpen hands back a PG with no pool; Close is nil-safe on it
func fakeOpen(context.Context, pg.Config, pg.QueryTracer, func(*pgxpool.Config)) (*pg.PG, error) {
	return &pg.PG{}, nil
}

func TestOpenPG_RetriesUntilPingSucceeds(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &openPool, fakeOpen)

	calls := 0
	testkit.Swap(t, &pingPool, func(context.Context, *pg.PG) error {
		calls++
		if calls < 3 {
			return errors.New("starting up")
		}
		return nil
	})

	db, err := openPG(context.Background(), Config{PG: PGConfig{ConnectRetries: 5, PingTimeout: time.Second}}, &Store{})
	if err != nil || db == nil {
		t.Fatalf("openPG = %v, %v", db, err)
	}
	if calls != 3 {
		t.Fatalf("ping calls = %d, want 3", calls)
	}
}

func TestOpenPG_GivesUpAfterRetries(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &openPool, fakeOpen)

	calls := 0
	down := errors.New("no route to host")
	testkit.Swap(t, &pingPool, func(context.Context, *pg.PG) error { calls++; return down })

	_, err := openPG(context.Background(), Config{PG: PGConfig{ConnectRetries: 2}}, &Store{})
	if !errors.Is(err, down) {
		t.Fatalf("err = %v, want wrapped ping failure", err)
	}
	if calls != 2 {
		t.Fatalf("ping calls = %d, want 2", calls)
	}
}

func TestOpenPG_ParentCanceledStopsBackoff(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &openPool, fakeOpen)

	ctx, cancel := context.WithCancel(context.Background())
	testkit.Swap(t, &pingPool, func(context.Context, *pg.PG) error {
		cancel()
		return errors.New("not yet")
	})

	start := time.Now()
	_, err := openPG(ctx, Config{PG: PGConfig{ConnectRetries: 50}}, &Store{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("cancel did not cut the backoff short")
	}
}

func TestOpenPG_OpenError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &openPool, func(context.Context, pg.Config, pg.QueryTracer, func(*pgxpool.Config)) (*pg.PG, error) {
		return nil, errors.New("bad dsn")
	})
	if _, err := openPG(context.Background(), Config{PG: PGConfig{LogSQL: true}}, &Store{}); err == nil {
		t.Fatalf("open error swallowed")
	}
}

func TestPGConfigFrom(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_DBURL", "postgres://u:p@db:5432/crosswords")
	t.Setenv("SERVICE_PGSQL_MAX_CONNS", "8")
	t.Setenv("SERVICE_PGSQL_LOG_SQL", "true")
	t.Setenv("SERVICE_PGSQL_PING_TIMEOUT", "750ms")

	c := PGConfigFrom(config.New().Prefix("SERVICE_PGSQL_"))
	if !c.Enabled || c.MaxConns != 8 || !c.LogSQL || c.SlowQueryMs != 500 {
		t.Fatalf("PGConfigFrom = %+v", c)
	}
	if c.pingTimeout() != 750*time.Millisecond || c.retries() != defaultConnectRetries {
		t.Fatalf("guard knobs = %v/%d", c.pingTimeout(), c.retries())
	}

	var zero PGConfig
	if zero.retries() != defaultConnectRetries || zero.pingTimeout() != defaultPingTimeout {
		t.Fatalf("zero config defaults not applied")
	}
}
