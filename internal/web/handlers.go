package web

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/corrector/internal/core"
	"github.com/JonMunkholm/corrector/internal/history"
	"github.com/JonMunkholm/corrector/internal/logging"
	"github.com/JonMunkholm/corrector/internal/web/views"
)

// handleIndex renders the upload form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := views.UploadPage(views.UploadPageData{
		Action:      "/convert",
		MaxFileSize: s.cfg.Upload.MaxFileSize,
		Accept:      ".csv,.txt,.xlsx,text/csv",
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render upload page", "error", err)
	}
}

// handleHealth reports liveness and conversion load.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]any{
		"status":      "ok",
		"conversions": s.limiter.Status(),
	})
}

// StatusResponse is returned by GET /api/status.
type StatusResponse struct {
	Conversions core.LimiterStatus `json:"conversions"`
	History     string             `json:"history"`
}

// handleStatus reports the limiter state and which history store is in use.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	store := "none"
	switch s.history.(type) {
	case *history.MemoryStore:
		store = "memory"
	case *history.PostgresStore:
		store = "postgres"
	}
	writeJSON(w, r, StatusResponse{Conversions: s.limiter.Status(), History: store})
}

// HistoryResponse is returned by GET /api/history.
type HistoryResponse struct {
	Entries []history.Entry `json:"entries"`
	Count   int             `json:"count"`
}

// handleHistory lists recent conversions, newest first. The optional
// limit query parameter caps the number of entries.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, r, HistoryResponse{Entries: []history.Entry{}})
		return
	}

	limit := s.cfg.History.ListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, r, errInvalidLimit, http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, HistoryResponse{Entries: entries, Count: len(entries)})
}
