package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"quizmaster/internal/service"
)

// HistoryHandler serves the finished-game read side.
type HistoryHandler struct {
	results *service.ResultService
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(results *service.ResultService) *HistoryHandler {
	return &HistoryHandler{results: results}
}

// ListGames handles GET /api/games?limit=&page=
func (h *HistoryHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	records, err := h.results.ListRecent(r.Context(), limit, page)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"games": records,
		"page":  page,
		"count": len(records),
	})
}

// GetGame handles GET /api/games/{code}
func (h *HistoryHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	rec, err := h.results.GetByCode(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// GetStats handles GET /api/stats
func (h *HistoryHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.results.GlobalStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// GetWinners handles GET /api/stats/winners?limit=
func (h *HistoryHandler) GetWinners(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	winners, err := h.results.TopWinners(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"winners": winners})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
