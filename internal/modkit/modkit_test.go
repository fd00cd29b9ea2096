package modkit

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crossword/internal/modkit/httpkit"
	"crossword/internal/platform/logger"
	phttp "crossword/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type stub struct {
	mounted bool
	ports   any
}

func (s *stub) MountRoutes(_ phttp.Router) { s.mounted = true }
func (s *stub) Ports() any                 { return s.ports }
func (s *stub) Name() string               { return "stub" }

var _ Module = (*stub)(nil)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()
	b := Build()
	if b.Name != "" || b.Prefix != "" || b.Ports != nil || len(b.Mw) != 0 {
		t.Fatalf("zero Build = %+v", b)
	}
	if b.Subrouter != nil || b.Register != nil {
		t.Fatalf("hooks should default to nil")
	}
}

func TestBuild_OptionsAndPrefix(t *testing.T) {
	t.Parallel()
	mw := func(next http.Handler) http.Handler { return next }
	src := []func(http.Handler) http.Handler{mw}

	b := Build(
		WithName("crosswords"),
		WithPrefix("crosswords/"),
		WithMiddlewares(src...),
		WithPorts(42),
	)
	if b.Name != "crosswords" || b.Prefix != "/crosswords" || b.Ports != 42 {
		t.Fatalf("Build = %+v", b)
	}
	src[0] = nil
	if b.Mw[0] == nil {
		t.Fatalf("Mw must be copied")
	}
}

func TestBuilt_MountOrderAndPrefix(t *testing.T) {
	t.Parallel()
	var seq []string
	b := Build(
		WithPrefix("/crosswords"),
		WithMiddlewares(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Module", "crosswords")
				next.ServeHTTP(w, r)
			})
		}),
		WithSubrouter(func(r phttp.Router) phttp.Router { seq = append(seq, "sub"); return r }),
		WithRegister(func(r phttp.Router) {
			seq = append(seq, "register")
			httpkit.Get(r, "/extra", func(*http.Request) (any, error) { return "extra", nil })
		}),
	)

	r := phttp.AdaptChi(chi.NewRouter())
	b.Mount(r, func(rr httpkit.Router) {
		seq = append(seq, "own")
		httpkit.Get(rr, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	})
	if strings.Join(seq, ",") != "sub,own,register" {
		t.Fatalf("hook order = %v", seq)
	}

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crosswords/ping", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("X-Module") != "crosswords" || !strings.Contains(rec.Body.String(), "pong") {
		t.Fatalf("GET /crosswords/ping = %d %q", rec.Code, rec.Body.String())
	}
	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crosswords/extra", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /crosswords/extra = %d", rec.Code)
	}
}

func TestBuilt_MountWithoutPrefix(t *testing.T) {
	t.Parallel()
	r := phttp.AdaptChi(chi.NewRouter())
	Build().Mount(r, func(rr httpkit.Router) {
		httpkit.Get(rr, "/root", func(*http.Request) (any, error) { return true, nil })
	})
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/root", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /root = %d", rec.Code)
	}
}

func TestDeps_Named(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	d := Deps{Log: logger.Logger(zerolog.New(&buf))}
	l := d.Named("crosswords")
	l.Info().Msg("hello")
	if !strings.Contains(buf.String(), `"module":"crosswords"`) {
		t.Fatalf("log line = %q", buf.String())
	}

	var zero Deps
	zl := zero.Named("x")
	zl.Info().Msg("dropped")
}

func TestModule_InterfaceSurface(t *testing.T) {
	t.Parallel()
	m := &stub{ports: 42}
	m.MountRoutes(nil)
	if !m.mounted || m.Ports() != 42 {
		t.Fatalf("stub = %+v", m)
	}
}
