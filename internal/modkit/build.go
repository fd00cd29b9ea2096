package modkit

import (
	"net/http"

	"crossword/internal/modkit/httpkit"
	str "crossword/internal/platform/strings"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	// router hooks set via options
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build applies Option funcs on top of defaults and returns a plain struct
// the prefix is normalized to a single leading slash
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	b := Built{
		Name:      c.name,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
	if c.prefix != "" {
		b.Prefix = str.MustPrefix(c.prefix)
	}
	return b
}

// Mount registers own, then any external Register hook, under Prefix with Mw applied
// an empty Prefix mounts in a group on r itself
func (b Built) Mount(r httpkit.Router, own func(httpkit.Router)) {
	body := func(rr httpkit.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		if b.Subrouter != nil {
			rr = b.Subrouter(rr)
		}
		if own != nil {
			own(rr)
		}
		if b.Register != nil {
			b.Register(rr)
		}
	}
	if b.Prefix == "" {
		r.Group(body)
		return
	}
	r.Route(b.Prefix, body)
}
