// Package http wraps chi and net/http with the envelope every endpoint answers in
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "crossword/internal/platform/errors"
	pnet "crossword/internal/platform/net"
)

// Envelope is the response body for all endpoints
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorEnvelope builds the envelope for err; status comes from its code
func ErrorEnvelope(err error, reqID string) Envelope {
	status, wire := perr.HTTP(err)
	return Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       wire.Code,
		Error:      wire.Message,
		Field:      wire.Field,
		RequestID:  reqID,
	}
}

// RespondError writes err as an envelope
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	env := ErrorEnvelope(err, pnet.RequestID(r.Context()))
	JSON(w, env.StatusCode, env)
}

// Response is what return-style handlers produce
type Response struct {
	Status int
	Body   any // an error body becomes an error envelope
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		resp := h(r)
		if err, ok := resp.Body.(error); ok && err != nil {
			RespondError(w, r, err)
			return
		}
		status := resp.Status
		if status == 0 {
			status = stdhttp.StatusOK
		}
		if status == stdhttp.StatusNoContent {
			w.WriteHeader(status)
			return
		}
		JSON(w, status, Envelope{
			StatusCode: status,
			Status:     stdhttp.StatusText(status),
			RequestID:  pnet.RequestID(r.Context()),
			Data:       resp.Body,
		})
	}
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// Error returns a response whose status is derived from err
func Error(err error) Response { return Response{Body: err} }
