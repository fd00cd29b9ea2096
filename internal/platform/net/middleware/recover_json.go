package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	perr "crossword/internal/platform/errors"
	"crossword/internal/platform/logger"
	phttp "crossword/internal/platform/net/http"
	pnet "crossword/internal/platform/net"
)

// RecoverJSON turns a panic into a 500 envelope and logs the stack.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Str("request_id", reqID).
				Str("panic", fmt.Sprint(v)).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			env := phttp.ErrorEnvelope(perr.PanicErrf("internal server error"), reqID)
			phttp.JSON(w, env.StatusCode, env)
		}()
		next.ServeHTTP(w, r)
	})
}
