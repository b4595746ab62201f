package observe

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/plus3/blockfall/game"
	"github.com/rs/zerolog/log"
)

// BoardSummary is one entry of the board listing.
type BoardSummary struct {
	Handle Handle     `json:"handle"`
	ID     string     `json:"id"`
	Phase  string     `json:"phase"`
	Stats  game.Stats `json:"stats"`
}

// BoardDetail is a snapshot with its phase spelled out.
type BoardDetail struct {
	Handle    Handle `json:"handle"`
	PhaseName string `json:"phase_name"`
	game.Snapshot
}

// Routes returns the read-only HTTP API over store.
func Routes(store *Store) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]any{
				"status": "ok",
				"boards": store.Len(),
				"tick":   store.Tick(),
			})
		})

		r.Get("/boards", func(w http.ResponseWriter, r *http.Request) {
			handles := store.Handles()
			out := make([]BoardSummary, 0, len(handles))
			for _, h := range handles {
				snap, ok := store.Get(h)
				if !ok {
					continue
				}
				out = append(out, BoardSummary{
					Handle: h,
					ID:     snap.ID,
					Phase:  snap.Phase.String(),
					Stats:  snap.Stats,
				})
			}
			respondJSON(w, http.StatusOK, out)
		})

		r.Get("/boards/{handle}", func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, "handle")
			n, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				respondError(w, http.StatusBadRequest, "invalid board handle")
				return
			}

			h := Handle(n)
			snap, ok := store.Get(h)
			if !ok {
				respondError(w, http.StatusNotFound, "board not found")
				return
			}
			respondJSON(w, http.StatusOK, BoardDetail{Handle: h, PhaseName: snap.Phase.String(), Snapshot: snap})
		})
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
