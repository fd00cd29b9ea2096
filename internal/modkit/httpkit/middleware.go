package httpkit

import (
	"net/http"
	"time"

	"crossword/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Timeout     time.Duration
	CORSOrigins []string
	Heartbeat   string

	// MaxInFlight throttles concurrent requests when set; the backlog is twice as deep
	MaxInFlight int
	BacklogWait time.Duration
}

// CommonStack returns the baseline middleware for the versioned API
// platform defaults first, then CORS, the heartbeat probe and an optional throttle
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	stack := middleware.Defaults(o.Timeout)
	stack = append(stack, middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}))
	if o.Heartbeat != "" {
		stack = append(stack, middleware.Heartbeat(o.Heartbeat))
	}
	if o.MaxInFlight > 0 {
		if o.BacklogWait <= 0 {
			o.BacklogWait = 10 * time.Second
		}
		stack = append(stack, middleware.Throttle(o.MaxInFlight, 2*o.MaxInFlight, o.BacklogWait))
	}
	return stack
}
