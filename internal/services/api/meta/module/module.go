// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"crossword/internal/modkit"
	"crossword/internal/modkit/httpkit"
	modreg "crossword/internal/modkit/module"

	metahttp "crossword/internal/services/api/meta/http"
)

// ServiceName is reported by the health, version and service endpoints
const ServiceName = "crossword-api"

// Module implements the modkit.Module interface
type Module struct {
	built     modkit.Built
	pg        any
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{built: b, pg: deps.PG, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   m.startedAt,
			PG:          m.pg,
			Modules:     modreg.Names,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
