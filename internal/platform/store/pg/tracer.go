package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"crossword/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one statement after it ran
type QueryEvent struct {
	SQL       string
	Args      []any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives every statement the store runs
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// maxArgLen caps each logged argument; crossword documents run to kilobytes
const maxArgLen = 64

// Tracer logs every statement, pinned to debug so SERVICE_PGSQL_LOG_SQL works
// regardless of LOG_LEVEL. Slow statements are logged at warn
func Tracer(root logger.Logger) QueryTracer {
	return &zlTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Int("nargs", len(ev.Args)).
		Strs("args", preview(ev.Args)).
		Err(ev.Err).
		Msg("pg query")
}

// compact folds runs of whitespace into single spaces and trims the ends
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }

// preview renders args for the log, truncating long values; multi-row inserts
// are cut off after a few rows
func preview(args []any) []string {
	const maxArgs = 16
	n := min(len(args), maxArgs)
	out := make([]string, 0, n+1)
	for _, a := range args[:n] {
		var s string
		switch v := a.(type) {
		case nil:
			s = "NULL"
		case []byte:
			s = string(v)
		case json.RawMessage:
			s = string(v)
		case string:
			s = v
		default:
			s = fmt.Sprint(v)
		}
		if len(s) > maxArgLen {
			s = fmt.Sprintf("%s...(%d bytes)", s[:maxArgLen], len(s))
		}
		out = append(out, s)
	}
	if len(args) > maxArgs {
		out = append(out, fmt.Sprintf("...(+%d more)", len(args)-maxArgs))
	}
	return out
}
