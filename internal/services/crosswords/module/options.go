package module

import (
	"crossword/internal/platform/config"
	"crossword/internal/platform/store"
	cwhttp "crossword/internal/services/crosswords/http"
)

// Options holds configuration settings for the crosswords module
type Options struct {
	// Workers caps storage calls running at once; defaults to the pg pool size
	Workers        int
	StoreBodyBytes int64
}

// FromConfig reads CORE_CROSSWORDS_* from cfg
func FromConfig(cfg config.Conf) Options {
	conns := cfg.Prefix("SERVICE_PGSQL_").MayPositiveInt("MAX_CONNS", store.DefaultMaxConns)
	cf := cfg.Prefix("CORE_CROSSWORDS_")
	return Options{
		Workers:        cf.MayPositiveInt("WORKERS", conns),
		StoreBodyBytes: int64(cf.MayPositiveInt("STORE_BODY_BYTES", cwhttp.DefaultStoreBodyBytes)),
	}
}
