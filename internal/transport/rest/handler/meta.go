package handler

import (
	"net/http"

	"quizmaster/internal/game"
	"quizmaster/internal/question"
)

// MetaHandler serves health and question catalog endpoints.
type MetaHandler struct {
	registry  *game.Registry
	questions *question.Service
}

// NewMetaHandler creates a new meta handler.
func NewMetaHandler(registry *game.Registry, questions *question.Service) *MetaHandler {
	return &MetaHandler{
		registry:  registry,
		questions: questions,
	}
}

// Health handles GET /health
func (h *MetaHandler) Health(w http.ResponseWriter, r *http.Request) {
	rooms, connections := h.registry.Count()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"activeRooms": rooms,
		"connections": connections,
	})
}

// Categories handles GET /api/categories
func (h *MetaHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": h.questions.Categories(),
	})
}
