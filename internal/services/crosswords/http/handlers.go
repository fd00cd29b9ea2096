// Package http exposes the crossword ports over chi routes
package http

import (
	stdhttp "net/http"
	"net/url"

	"crossword/internal/modkit/httpkit"
	perr "crossword/internal/platform/errors"
	"crossword/internal/platform/logger"
	"crossword/internal/platform/net/http/bind"
	"crossword/internal/services/crosswords/domain"
)

// DefaultStoreBodyBytes caps a bulk store request body
const DefaultStoreBodyBytes = 32 << 20

// Handlers serves the crossword routes
type Handlers struct {
	svc       domain.ServicePort
	storeBody int64
}

// New returns handlers over svc; maxStoreBody <= 0 means DefaultStoreBodyBytes
func New(svc domain.ServicePort, maxStoreBody int64) *Handlers {
	if svc == nil {
		panic("crosswords http: nil service")
	}
	if maxStoreBody <= 0 {
		maxStoreBody = DefaultStoreBodyBytes
	}
	return &Handlers{svc: svc, storeBody: maxStoreBody}
}

// Register mounts the routes on r, which is already scoped to the module prefix.
// Guardian ids carry slashes, so the single lookup takes the rest of the path
func (h *Handlers) Register(r httpkit.Router) {
	httpkit.Get(r, "/{series}/ids", h.ids)
	httpkit.Get(r, "/{series}", h.metadata)
	httpkit.Get(r, "/{series}/*", h.byID)
	httpkit.CreateJSON(r, "/", h.store, bind.JSONOptions{MaxBytes: h.storeBody, DisallowUnknown: true})
}

// ids godoc
// @Summary  List crossword ids in a series
// @Tags     crosswords
// @Produce  json
// @Param    series path string true "series"
// @Success  200 {object} httpkit.Envelope{data=[]string}
// @Failure  500 {object} httpkit.Envelope
// @Router   /crosswords/{series}/ids [get]
func (h *Handlers) ids(r *stdhttp.Request) (any, error) {
	series := httpkit.Param(r, "series")
	return h.svc.IDsForSeries(logger.WithSeries(r.Context(), series), series)
}

// metadata godoc
// @Summary  List crossword metadata in a series
// @Tags     crosswords
// @Produce  json
// @Param    series path string true "series"
// @Success  200 {object} httpkit.Envelope{data=[]domain.Metadata}
// @Failure  500 {object} httpkit.Envelope
// @Router   /crosswords/{series} [get]
func (h *Handlers) metadata(r *stdhttp.Request) (any, error) {
	series := httpkit.Param(r, "series")
	return h.svc.MetadataForSeries(logger.WithSeries(r.Context(), series), series)
}

// byID godoc
// @Summary  Fetch one crossword document
// @Tags     crosswords
// @Produce  json
// @Param    series path string true "series"
// @Param    id     path string true "crossword id"
// @Success  200 {object} httpkit.Envelope{data=guardian.Crossword}
// @Failure  404 {object} httpkit.Envelope
// @Failure  500 {object} httpkit.Envelope
// @Router   /crosswords/{series}/{id} [get]
func (h *Handlers) byID(r *stdhttp.Request) (any, error) {
	series, err := pathParam(r, "series")
	if err != nil {
		return nil, err
	}
	id, err := pathParam(r, "*")
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, perr.WithField(perr.InvalidArgf("crossword id is required"), "id")
	}
	return h.svc.BySeriesAndID(logger.WithSeries(r.Context(), series), id, series)
}

// pathParam decodes a route param. chi matches on RawPath whenever the
// request carries escapes such as %2F, so params arrive still escaped then
func pathParam(r *stdhttp.Request, name string) (string, error) {
	v := httpkit.Param(r, name)
	if r.URL.RawPath == "" {
		return v, nil
	}
	out, err := url.PathUnescape(v)
	if err != nil {
		field := name
		if name == "*" {
			field = "id"
		}
		return "", perr.WithField(perr.InvalidArgf("malformed path segment %q", v), field)
	}
	return out, nil
}

// store godoc
// @Summary  Insert crosswords, all or none
// @Tags     crosswords
// @Accept   json
// @Produce  json
// @Param    body body domain.StoreInput true "crosswords"
// @Success  201 {object} httpkit.Envelope{data=domain.StoreResult}
// @Failure  400 {object} httpkit.Envelope
// @Failure  500 {object} httpkit.Envelope
// @Router   /crosswords [post]
func (h *Handlers) store(r *stdhttp.Request, in domain.StoreInput) (any, error) {
	n, err := h.svc.Store(r.Context(), in.Crosswords)
	if err != nil {
		return nil, err
	}
	return domain.StoreResult{Inserted: n}, nil
}
