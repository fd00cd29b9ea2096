package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeInternal, http.StatusInternalServerError},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	if got := ErrorCodeNotFound.String(); got != "not_found" {
		t.Fatalf("String() = %q", got)
	}
	if got := ErrorCode(4242).String(); got != "code(4242)" {
		t.Fatalf("String() for unknown = %q", got)
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := New(ErrorCodeValidation, "bad stuff")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad json %d", 12)
	if got := e2.Error(); got != "bad json 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeDB, "db failed")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	e4 := Wrap(src, ErrorCodeNotFound, "missing row")
	if want := "missing row: root"; e4.Error() != want {
		t.Fatalf("Wrap().Error = %q, want %q", e4.Error(), want)
	}

	if got, ok := As(e4); !ok || got.Code() != ErrorCodeNotFound || got.Message() != "missing row" {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	e5 := WithOp(WithField(e3, "series"), "list")
	got, _ := As(e5)
	if got.Field() != "series" || got.Op() != "list" {
		t.Fatalf("WithField/WithOp = %q/%q", got.Field(), got.Op())
	}
	orig, _ := As(e3)
	if orig.Field() != "" || orig.Op() != "" {
		t.Fatalf("copy-on-write violated")
	}
	if WithField(src, "x") != src || WithOp(src, "x") != src {
		t.Fatalf("foreign errors must pass through unchanged")
	}
}

func TestInternalEmbedsCauseOnce(t *testing.T) {
	cause := stderrs.New("connection refused")
	err := Internal(cause, "get ids for series")

	if !IsCode(err, ErrorCodeInternal) {
		t.Fatalf("code = %v, want internal", CodeOf(err))
	}
	if want := "get ids for series: connection refused"; err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if w := WireFrom(err); w.Message != "get ids for series: connection refused" {
		t.Fatalf("wire message = %q", w.Message)
	}
	if !stderrs.Is(err, cause) {
		t.Fatalf("cause not on chain")
	}

	bare := Internal(nil, "pool closed")
	if bare.Error() != "pool closed" || !IsCode(bare, ErrorCodeInternal) {
		t.Fatalf("Internal(nil) = %v", bare)
	}
}

func TestWireFromAndHTTP(t *testing.T) {
	if (WireFrom(nil) != Wire{}) {
		t.Fatalf("WireFrom(nil) should be zero")
	}
	w := WireFrom(fmt.Errorf("plain"))
	if w.Code != ErrorCodeUnknown || w.Message != "plain" {
		t.Fatalf("WireFrom(foreign) = %+v", w)
	}

	status, wire := HTTP(Newf(ErrorCodeNotFound, "crossword not found: %s", "x"))
	if status != http.StatusNotFound || wire.Code != ErrorCodeNotFound {
		t.Fatalf("HTTP(notfound) = %d %+v", status, wire)
	}
	status, _ = HTTP(nil)
	if status != http.StatusOK {
		t.Fatalf("HTTP(nil) = %d", status)
	}
}

func TestRoot(t *testing.T) {
	base := stderrs.New("base")
	wrapped := fmt.Errorf("l1: %w", Wrap(base, ErrorCodeDB, "l2"))
	if Root(wrapped) != base {
		t.Fatalf("Root did not reach base")
	}
	if Root(nil) != nil {
		t.Fatalf("Root(nil) should be nil")
	}
}

func TestMaskHidesCause(t *testing.T) {
	cause := stderrs.New("conn reset by peer")
	err := Mask(cause, ErrorCodeNotFound, "crossword not found: guardian-1")
	if err.Error() != "crossword not found: guardian-1" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, cause) || !IsCode(err, ErrorCodeNotFound) {
		t.Fatalf("cause or code lost: %v", err)
	}
	if w := WireFrom(err); w.Message != "crossword not found: guardian-1" {
		t.Fatalf("wire = %+v", w)
	}
	if Mask(nil, ErrorCodeNotFound, "x").Error() != "x" {
		t.Fatalf("Mask(nil)")
	}
}
