// Package server exposes the monthly stats files and the player registry
// over a small read-only JSON API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/prospectlab/milbstats/internal/pbpstore"
	"github.com/prospectlab/milbstats/internal/registry"
)

// Server serves the stats API. The registry is optional; without it the
// search endpoint reports 503.
type Server struct {
	store      *pbpstore.Store
	reg        *registry.DB
	router     *mux.Router
	httpServer *http.Server
}

// New builds a server listening on addr.
func New(store *pbpstore.Store, reg *registry.DB, addr string) *Server {
	s := &Server{
		store:  store,
		reg:    reg,
		router: mux.NewRouter(),
	}
	s.setupRoutes()

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(s.router)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.rootHandler).Methods("GET")
	s.router.HandleFunc("/api/months", s.monthsHandler).Methods("GET")
	s.router.HandleFunc("/api/players/{id}", s.playerHandler).Methods("GET")
	s.router.HandleFunc("/api/search", s.searchHandler).Methods("GET")
}

// Start begins serving; it blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"service": "milbstats",
		"endpoints": []string{
			"GET /api/months",
			"GET /api/players/{id}?year=YYYY&month=M",
			"GET /api/search?q=<name>&limit=N",
		},
	})
}

// monthsHandler lists every month with a stats file.
func (s *Server) monthsHandler(w http.ResponseWriter, r *http.Request) {
	months, err := s.store.StatsMonths()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list months")
		return
	}
	if months == nil {
		months = []pbpstore.MonthRef{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"months": months})
}

// playerHandler returns one player's record from a monthly stats file.
// year and month default to the latest month available.
func (s *Server) playerHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	year, month, ok := s.resolveMonth(r)
	if !ok {
		respondError(w, http.StatusNotFound, "no stats data available")
		return
	}

	monthly, err := s.store.LoadMonthlyStats(year, month)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	record, ok := monthly.Players[id]
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("player %s not found in %d-%02d", id, year, month))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"id":     id,
		"year":   year,
		"month":  month,
		"player": record,
	})
}

// resolveMonth reads year/month query params, defaulting to the most
// recent stats month on disk.
func (s *Server) resolveMonth(r *http.Request) (int, int, bool) {
	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")
	if yearStr != "" && monthStr != "" {
		year, err1 := strconv.Atoi(yearStr)
		month, err2 := strconv.Atoi(monthStr)
		if err1 == nil && err2 == nil && month >= 1 && month <= 12 {
			return year, month, true
		}
		return 0, 0, false
	}

	months, err := s.store.StatsMonths()
	if err != nil || len(months) == 0 {
		return 0, 0, false
	}
	latest := months[len(months)-1]
	return latest.Year, latest.Month, true
}

// searchHandler looks players up by name in the registry.
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	if s.reg == nil {
		respondError(w, http.StatusServiceUnavailable, "player index not available; run 'milbstats index' first")
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		respondError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	limit := 25
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	entries, err := s.reg.SearchByName(q, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "search failed")
		return
	}

	type result struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Type      string `json:"type"`
		Team      string `json:"team,omitempty"`
		Level     string `json:"level,omitempty"`
		LastYear  int    `json:"lastYear"`
		LastMonth int    `json:"lastMonth"`
	}
	results := make([]result, 0, len(entries))
	for _, e := range entries {
		results = append(results, result{
			ID: e.ID, Name: e.Name, Type: e.Type,
			Team: e.Team, Level: e.Level,
			LastYear: e.LastYear, LastMonth: e.LastMonth,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"query": q, "results": results})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
