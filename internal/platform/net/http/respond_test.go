package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "crossword/internal/platform/errors"
	pnet "crossword/internal/platform/net"

	"github.com/go-chi/chi/v5"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
	}
	return env
}

func withReqID(method, path, body, id string) *http.Request {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	return r.WithContext(pnet.WithRequestID(r.Context(), id))
}

func TestHandle_Success(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	Handle(func(*http.Request) Response { return Created(map[string]int{"inserted": 2}) })(rec, withReqID("POST", "/", "", "rid-1"))

	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type = %q", ct)
	}
	env := decode(t, rec)
	if env.StatusCode != 201 || env.Status != "Created" || env.RequestID != "rid-1" {
		t.Fatalf("envelope = %+v", env)
	}
	if m, ok := env.Data.(map[string]any); !ok || m["inserted"] != float64(2) {
		t.Fatalf("data = %#v", env.Data)
	}
}

func TestHandle_ErrorStatusFromCode(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want int
	}{
		{perr.Newf(perr.ErrorCodeNotFound, "crossword not found: %s", "x"), http.StatusNotFound},
		{perr.Internal(errors.New("pool closed"), "get ids for series"), http.StatusInternalServerError},
		{perr.WithField(perr.New(perr.ErrorCodeValidation, "bad date"), "date"), http.StatusBadRequest},
		{errors.New("foreign"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		Handle(func(*http.Request) Response { return Error(c.err) })(rec, withReqID("GET", "/", "", "rid-e"))
		if rec.Code != c.want {
			t.Fatalf("%v: code = %d, want %d", c.err, rec.Code, c.want)
		}
		env := decode(t, rec)
		if env.StatusCode != c.want || env.Error == "" || env.RequestID != "rid-e" || env.Data != nil {
			t.Fatalf("%v: envelope = %+v", c.err, env)
		}
	}

	rec := httptest.NewRecorder()
	RespondError(rec, withReqID("GET", "/", "", ""), perr.WithField(perr.New(perr.ErrorCodeValidation, "bad date"), "date"))
	if env := decode(t, rec); env.Field != "date" || env.Code != perr.ErrorCodeValidation {
		t.Fatalf("field/code = %+v", env)
	}
}

func TestHandle_DefaultsAndNoContent(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	Handle(func(*http.Request) Response { return Response{Body: "x"} })(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("zero status should default to 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	Handle(func(*http.Request) Response { return Response{Status: http.StatusNoContent} })(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("204 = %d %q", rec.Code, rec.Body.String())
	}
}

type echoIn struct {
	Series string `json:"series" validate:"required"`
}

func TestSugarAndAdapter(t *testing.T) {
	t.Parallel()
	m := chi.NewRouter()
	r := AdaptChi(m)

	r.Route("/api", func(api Router) {
		api.Group(func(g Router) {
			g.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					w.Header().Set("X-Group", "1")
					next.ServeHTTP(w, req)
				})
			})
			GetJSON(g, "/{series}/ids", func(req *http.Request) (any, error) {
				return []string{Param(req, "series") + "-1"}, nil
			})
		})
		PostJSON(api, "/echo", func(_ *http.Request, in echoIn) (any, error) { return in.Series, nil })
		CreateJSON(api, "/make", func(_ *http.Request, in echoIn) (any, error) { return in.Series, nil })
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
		return rec
	}

	rec := do("GET", "/api/quick/ids", "")
	if rec.Code != 200 || rec.Header().Get("X-Group") != "1" || !strings.Contains(rec.Body.String(), `"quick-1"`) {
		t.Fatalf("GET = %d %q", rec.Code, rec.Body.String())
	}
	if rec := do("POST", "/api/echo", `{"series":"cryptic"}`); rec.Code != 200 || decode(t, rec).Data != "cryptic" {
		t.Fatalf("POST echo = %d %q", rec.Code, rec.Body.String())
	}
	if rec := do("POST", "/api/make", `{"series":"prize"}`); rec.Code != 201 {
		t.Fatalf("POST make = %d", rec.Code)
	}
	if rec := do("POST", "/api/make", `{}`); rec.Code != 400 {
		t.Fatalf("POST make invalid = %d", rec.Code)
	}
	if rec := do("GET", "/api/echo", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET on POST route = %d", rec.Code)
	}
}

func TestMountProfiler(t *testing.T) {
	t.Parallel()
	r := AdaptChi(chi.NewRouter())
	MountProfiler(r, "/debug", true)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/debug/pprof/", nil))
	if rec.Code != 200 {
		t.Fatalf("pprof index = %d", rec.Code)
	}

	off := AdaptChi(chi.NewRouter())
	MountProfiler(off, "/debug", false)
	rec = httptest.NewRecorder()
	off.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/debug/pprof/", nil))
	if rec.Code != 404 {
		t.Fatalf("disabled profiler = %d", rec.Code)
	}
}
