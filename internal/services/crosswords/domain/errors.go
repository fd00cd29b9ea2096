package domain

import (
	perr "crossword/internal/platform/errors"
)

// NotFound is the single-row lookup outcome for id. cause may be nil; when set
// it stays on the chain for logs and errors.Is but is left out of the message
func NotFound(id string, cause error) error {
	return perr.Mask(cause, perr.ErrorCodeNotFound, "crossword not found: "+id)
}

// Internal is a server side failure; the message embeds the cause text
func Internal(cause error, msg string) error { return perr.Internal(cause, msg) }

// IsNotFound reports whether err is a NotFound outcome
func IsNotFound(err error) bool { return perr.IsCode(err, perr.ErrorCodeNotFound) }

// IsInternal reports whether err is an Internal failure
func IsInternal(err error) bool { return perr.IsCode(err, perr.ErrorCodeInternal) }
