package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"crossword/internal/modkit"
	"crossword/internal/modkit/httpkit"
	modreg "crossword/internal/modkit/module"
	"crossword/internal/platform/config"
	phttp "crossword/internal/platform/net/http"
	"crossword/internal/platform/store"
	"crossword/internal/platform/store/storetest"
	kit "crossword/internal/platform/testkit"
	"crossword/internal/services/crosswords/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deps(db store.DB) modkit.Deps {
	return modkit.Deps{Log: zerolog.Nop(), Cfg: config.New(), PG: db}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_MAX_CONNS", "12")
	t.Setenv("CORE_CROSSWORDS_WORKERS", "")
	assert.Equal(t, 12, FromConfig(config.New()).Workers)

	t.Setenv("CORE_CROSSWORDS_WORKERS", "3")
	t.Setenv("CORE_CROSSWORDS_STORE_BODY_BYTES", "1024")
	o := FromConfig(config.New())
	assert.Equal(t, 3, o.Workers)
	assert.EqualValues(t, 1024, o.StoreBodyBytes)
}

func TestNewRequiresPG(t *testing.T) {
	kit.MustPanic(t, func() { New(deps(nil)) })
}

func TestPortsAndRoutes(t *testing.T) {
	db := &storetest.DB{QueryFn: func(string, []any) (store.Rows, error) {
		return storetest.NewRows([]any{"crosswords/quick/1"}), nil
	}}
	m := New(deps(db))
	assert.Equal(t, "crosswords", m.Name())

	reader, ok := modreg.PortsOf[domain.Reader](m)
	require.True(t, ok)
	ids, err := reader.IDsForSeries(context.Background(), "quick")
	require.NoError(t, err)
	assert.Equal(t, []string{"crosswords/quick/1"}, ids)

	_, ok = modreg.PortsOf[domain.Writer](m)
	assert.True(t, ok)

	r := phttp.AdaptChi(chi.NewRouter())
	httpkit.MountAPIV1(r, nil, m.MountRoutes)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/crosswords/quick/ids", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["crosswords/quick/1"]`, dataOf(t, rec.Body.Bytes()))

	require.NoError(t, m.Drain(context.Background()))
}

func dataOf(t *testing.T, body []byte) string {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	return string(env.Data)
}
