// @title         Crossword API
// @version       0.1.0
// @description   Store and serve Guardian crosswords by series

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"crossword/internal/modkit/repokit"
	"crossword/internal/platform/config"
	"crossword/internal/platform/logger"
	phttp "crossword/internal/platform/net/http"
	"crossword/internal/platform/store"

	"crossword/internal/services/api"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = "crossword-api"
	}
	logger.Init(opt)
	l := logger.Get()

	st, err := store.Open(ctx,
		store.Config{AppName: "crossword-api", PG: store.PGConfigFrom(root.Prefix("SERVICE_PGSQL_"))},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// http server (reads CORE_API_ADDR and the timeouts)
	srv := phttp.NewServer(apiCfg)

	a := api.Mount(srv.Router(), api.Options{
		Config:         apiCfg,
		Root:           root,
		Store:          st,
		Logger:         *l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}

	dctx, cancel := context.WithTimeout(context.Background(), apiCfg.MayDuration("DRAIN_TIMEOUT", 10*time.Second))
	defer cancel()
	if err := a.Drain(dctx); err != nil {
		l.Warn().Err(err).Msg("storage jobs still running at exit")
	}
}
