// Package modkit provides module wiring and core deps
package modkit

import (
	"crossword/internal/platform/config"
	"crossword/internal/platform/logger"
	"crossword/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// wiring only; modules own their own abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// PG is the pooled postgres seam; nil when the store runs without postgres
	PG store.DB
}

// Named returns a logger for a module, tagged with its name
func (d Deps) Named(module string) logger.Logger {
	return d.Log.With().Str("module", module).Logger()
}
