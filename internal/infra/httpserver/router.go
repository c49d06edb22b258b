package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	app "github.com/alinasir85/Jouster/internal/application/analysis"
	domai "github.com/alinasir85/Jouster/internal/domain/ai"
	domain "github.com/alinasir85/Jouster/internal/domain/analysis"
	"github.com/alinasir85/Jouster/internal/middleware"
)

type Router struct {
	svc *app.Service
}

func NewRouter(svc *app.Service) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/search", r.wrap(r.handleSearch))
		rt.Get("/analyses", r.wrap(r.handleList))
		rt.Get("/analyses/{id}", r.wrap(r.handleGet))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			writeError(w, err)
		}
	}
}

// writeError maps the error taxonomy onto HTTP statuses. Nothing is
// swallowed: a missing summary surfaces as a clear 422, never a
// defaulted-looking record.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	var me *domai.MalformedResponseError
	var pe *domai.ProviderError
	var se *domain.StorageError
	switch {
	case errors.As(err, &ve):
		httpError(w, http.StatusUnprocessableEntity, ve.Reason)
	case errors.As(err, &me):
		httpError(w, http.StatusUnprocessableEntity, me.Error())
	case errors.Is(err, domai.ErrQuotaExceeded):
		httpError(w, http.StatusTooManyRequests, "ai quota exceeded")
	case errors.As(err, &pe):
		httpError(w, http.StatusBadGateway, pe.Error())
	case errors.As(err, &se):
		httpError(w, http.StatusInternalServerError, "storage failure")
	case errors.Is(err, sql.ErrNoRows):
		httpError(w, http.StatusNotFound, "not found")
	default:
		httpError(w, http.StatusInternalServerError, err.Error())
	}
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// POST /v1/analyze
// Body: {"text": "<raw text>"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		httpError(w, http.StatusBadRequest, "invalid JSON body")
		return nil
	}

	a, err := r.svc.Analyze(req.Context(), body.Text)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}
	middleware.IncrementAnalyses()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(a)
}

type searchResponse struct {
	SearchTerm string             `json:"search_term"`
	TotalCount int                `json:"total_count"`
	Analyses   []*domain.Analysis `json:"analyses"`
}

// GET /v1/search?topic=term&limit=20
func (r *Router) handleSearch(w http.ResponseWriter, req *http.Request) error {
	term := req.URL.Query().Get("topic")
	if strings.TrimSpace(term) == "" {
		httpError(w, http.StatusBadRequest, "topic query parameter is required")
		return nil
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.svc.Search(req.Context(), term, limit)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(searchResponse{
		SearchTerm: term,
		TotalCount: len(list),
		Analyses:   list,
	})
}

// GET /v1/analyses?limit=20
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.svc.Latest(req.Context(), limit)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")

	a, err := r.svc.Get(req.Context(), domain.AnalysisID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(a)
}
