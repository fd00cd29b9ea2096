// Package module wires the crossword store into the API using modkit
package module

import (
	"context"

	"crossword/internal/modkit"
	"crossword/internal/modkit/httpkit"
	"crossword/internal/platform/offload"
	"crossword/internal/services/crosswords/domain"
	cwhttp "crossword/internal/services/crosswords/http"
	"crossword/internal/services/crosswords/repo"
	"crossword/internal/services/crosswords/service"
)

// MaxBatch is the most crosswords one Store call accepts
const MaxBatch = repo.MaxInsertRows

// Ports exposed by the crosswords module
type Ports struct {
	Reader domain.Reader
	Writer domain.Writer
}

// Module implements the crosswords API module
type Module struct {
	built modkit.Built
	ports Ports
	pool  *offload.Pool
	h     *cwhttp.Handlers
}

// New constructs the module; deps.PG is required
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	if deps.PG == nil {
		panic("crosswords module requires a postgres seam")
	}
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("crosswords"),
		modkit.WithPrefix("/crosswords"),
	}, opts...)...)
	cfg := FromConfig(deps.Cfg)

	log := deps.Named(b.Name)
	pool := offload.New(cfg.Workers)
	svc := service.New(deps.PG, repo.NewPG(), pool, log)
	log.Debug().Int("workers", pool.Size()).Msg("crosswords module ready")

	return &Module{
		built: b,
		ports: Ports{Reader: svc, Writer: svc},
		pool:  pool,
		h:     cwhttp.New(svc, cfg.StoreBodyBytes),
	}
}

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r, m.h.Register) }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.built.Name }

// Drain waits for storage jobs abandoned by their callers to finish
func (m *Module) Drain(ctx context.Context) error { return m.pool.Drain(ctx) }
