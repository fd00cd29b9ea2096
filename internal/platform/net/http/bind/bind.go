// Package bind decodes and validates JSON request bodies
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	perr "crossword/internal/platform/errors"
	"crossword/internal/platform/logger"
	"crossword/internal/platform/validate"
)

// JSONOptions controls parsing behavior
type JSONOptions struct {
	MaxBytes        int64 // default 1MB; <0 means unlimited
	DisallowUnknown bool
	AllowEmptyBody  bool
}

// DefaultMaxBytes caps request bodies unless overridden
const DefaultMaxBytes = 1 << 20

func defaults() JSONOptions {
	return JSONOptions{MaxBytes: DefaultMaxBytes, DisallowUnknown: true}
}

// ParseJSON decodes the request body into T and validates it.
// Decode failures are JSON errors; failed `validate` tags are Validation errors
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaults()
	if len(opts) > 0 {
		o = opts[0]
		if o.MaxBytes == 0 {
			o.MaxBytes = DefaultMaxBytes
		}
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("failed to close request body")
		}
	}()

	var body io.Reader = r.Body
	if o.MaxBytes > 0 {
		// one extra byte tells "exactly at the limit" from "over it"
		body = io.LimitReader(r.Body, o.MaxBytes+1)
	}
	lr := &countingReader{r: body}

	dec := json.NewDecoder(lr)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		switch {
		case errors.Is(err, io.EOF) && o.AllowEmptyBody:
			return dst, nil
		case errors.Is(err, io.EOF):
			return zero, perr.JSONErrf("empty body")
		case o.MaxBytes > 0 && lr.n > o.MaxBytes:
			return zero, perr.JSONErrf("body exceeds %d bytes", o.MaxBytes)
		default:
			return zero, perr.JSONErrf("invalid JSON: %v", err)
		}
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if o.MaxBytes > 0 && lr.n > o.MaxBytes {
		return zero, perr.JSONErrf("body exceeds %d bytes", o.MaxBytes)
	}

	if err := validate.Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
