package store

import (
	"time"

	"crossword/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string
	PG      PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot guard; zero means the defaults below
	ConnectRetries int
	PingTimeout    time.Duration
}

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
)

// DefaultMaxConns is the pool size when MAX_CONNS is unset
const DefaultMaxConns = 4

// PGConfigFrom reads DBURL, MAX_CONNS, SLOW_MS, LOG_SQL, CONNECT_RETRIES and
// PING_TIMEOUT from c, normally config.New().Prefix("SERVICE_PGSQL_")
func PGConfigFrom(c config.Conf) PGConfig {
	return PGConfig{
		Enabled:        true,
		URL:            c.MustPostgresURL("DBURL"),
		MaxConns:       int32(c.MayPositiveInt("MAX_CONNS", DefaultMaxConns)),
		SlowQueryMs:    c.MayInt("SLOW_MS", 500),
		LogSQL:         c.MayBool("LOG_SQL", false),
		ConnectRetries: c.MayPositiveInt("CONNECT_RETRIES", defaultConnectRetries),
		PingTimeout:    c.MayDuration("PING_TIMEOUT", defaultPingTimeout),
	}
}

func (c PGConfig) retries() int {
	if c.ConnectRetries > 0 {
		return c.ConnectRetries
	}
	return defaultConnectRetries
}

func (c PGConfig) pingTimeout() time.Duration {
	if c.PingTimeout > 0 {
		return c.PingTimeout
	}
	return defaultPingTimeout
}
