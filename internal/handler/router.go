package handler

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	chathandler "github.com/steven0413/ChatBetTechnicalAssessment/internal/handler/chat"
)

// NewRouter wires HTTP routes to the chat handler and serves the widget.
func NewRouter(h *chathandler.Handler, staticDir string, chatRateLimit int) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Group(func(limited chi.Router) {
		limited.Use(httprate.LimitByIP(chatRateLimit, time.Minute))
		limited.Post("/chat", h.HandleChat)
	})

	r.Get("/health", h.HandleHealth)
	r.Get("/ws/chat", h.HandleWebSocket)

	if staticDir != "" {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Handle("/static/*", http.StripPrefix("/static/", fileServer))
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, filepath.Join(staticDir, "index.html"))
		})
	}

	return r
}
