package httpkit

import (
	"net/http"

	phttp "crossword/internal/platform/net/http"
	"crossword/internal/platform/net/http/bind"
)

// Get registers a body-less GET handler
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// PostJSON binds and validates a T body and answers 200
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...bind.JSONOptions) {
	phttp.PostJSON(r, path, h, opts...)
}

// CreateJSON binds and validates a T body and answers 201
func CreateJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...bind.JSONOptions) {
	phttp.CreateJSON(r, path, h, opts...)
}
