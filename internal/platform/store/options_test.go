package store

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
)

func TestWithLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	s := &Store{}
	if err := WithLogger(zerolog.New(&buf))(s); err != nil {
		t.Fatalf("WithLogger = %v", err)
	}
	s.Log.Info().Msg("hello")
	if buf.Len() == 0 {
		t.Fatalf("store logger not wired to the buffer")
	}
}
