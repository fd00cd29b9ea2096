// Package api composes the crossword HTTP API out of modules
package api

import (
	"context"
	"time"

	"crossword/internal/platform/config"
	"crossword/internal/platform/logger"
	phttp "crossword/internal/platform/net/http"
	"crossword/internal/platform/store"

	"crossword/internal/modkit"
	"crossword/internal/modkit/httpkit"
	"crossword/internal/modkit/module"
	"crossword/internal/modkit/swaggerkit"

	metamod "crossword/internal/services/api/meta/module"
	cwmod "crossword/internal/services/crosswords/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf // the CORE_API_ view
	Root           config.Conf // unprefixed, for module settings
	Store          *store.Store
	Logger         logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// API is the mounted module set; Drain waits on work callers walked away from
type API struct {
	crosswords *cwmod.Module
}

// Mount mounts every module under /api/v1 onto r
func Mount(r phttp.Router, opt Options) *API {
	deps := modkit.Deps{
		Log: opt.Logger,
		Cfg: opt.Root,
		PG:  opt.Store.PG,
	}

	cw := cwmod.New(deps)
	mods := []module.Module{
		metamod.New(deps),
		cw,
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		Timeout:     opt.Config.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		CORSOrigins: opt.Config.MayCSV("CORS_ORIGINS", nil),
		Heartbeat:   "/api/v1/ping",
		MaxInFlight: opt.Config.MayInt("MAX_IN_FLIGHT", 0),
	})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, opt.EnableSwagger, "/api/v1")
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	return &API{crosswords: cw}
}

// Drain waits for in-flight storage jobs to return or ctx to end
func (a *API) Drain(ctx context.Context) error { return a.crosswords.Drain(ctx) }
