package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"quizmaster/internal/game"
	"quizmaster/internal/question"
	"quizmaster/internal/service"
	"quizmaster/internal/transport/rest/handler"
	"quizmaster/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	Registry      *game.Registry
	Questions     *question.Service
	ResultService *service.ResultService
	WSHandler     *ws.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	historyHandler := handler.NewHistoryHandler(c.ResultService)
	metaHandler := handler.NewMetaHandler(c.Registry, c.Questions)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	r.HandleFunc("/health", metaHandler.Health).Methods("GET")

	// WebSocket endpoint (all gameplay runs over this socket)
	r.HandleFunc("/ws", c.WSHandler.ServeWS).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/categories", metaHandler.Categories).Methods("GET", "OPTIONS")
	api.HandleFunc("/games", historyHandler.ListGames).Methods("GET", "OPTIONS")
	api.HandleFunc("/games/{code}", historyHandler.GetGame).Methods("GET", "OPTIONS")
	api.HandleFunc("/stats", historyHandler.GetStats).Methods("GET", "OPTIONS")
	api.HandleFunc("/stats/winners", historyHandler.GetWinners).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
