package api

import (
	"net/http"
	"time"

	// swaggo registers the API definitions on import.
	_ "kenotrix/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(chatHandler *ChatHandler, contentHandler *ContentHandler, voiceHandler *VoiceHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Plain JSON routes get a request timeout.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			// --- Threads ---
			r.Get("/threads", chatHandler.GetThreads)
			r.Post("/threads", chatHandler.CreateThread)
			r.Delete("/threads/active", chatHandler.ClearActiveThread)
			r.Get("/threads/{threadID}", chatHandler.GetThread)
			r.Put("/threads/{threadID}/title", chatHandler.UpdateThreadTitle)
			r.Put("/threads/{threadID}/active", chatHandler.SetActiveThread)
			r.Delete("/threads/{threadID}", chatHandler.DeleteThread)

			// --- Content ---
			r.Get("/discover", contentHandler.GetDiscover)
			r.Get("/suggestions", contentHandler.GetSuggestions)
			r.Post("/render", contentHandler.Render)

			// --- Voice ---
			r.Get("/voice", voiceHandler.GetCapabilities)
			r.Post("/voice/speak", voiceHandler.HandleSpeak)
		})

		// Long-running routes hold the connection open and must not time out.
		r.Group(func(r chi.Router) {
			r.Post("/messages", chatHandler.HandleStreamMessage)
			r.Post("/voice/listen", voiceHandler.HandleListen)
		})
	})

	// The built web client, when present.
	fileServer := http.FileServer(http.Dir("./frontend/dist"))
	r.Handle("/*", http.StripPrefix("/", fileServer))

	return r
}
