package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/boostify/outreach/internal/pkg/metrics"
)

// SetupRoutes configures all API routes.
func SetupRoutes(s *Server) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://boostifymusic.com", "http://localhost:5173", "http://localhost:5000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if s.health != nil {
		r.Get("/health", s.health.HandleHealth)
		r.Get("/health/live", s.health.HandleLiveness)
		r.Get("/health/ready", s.health.HandleReadiness)
	} else {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	}
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/outreach", func(r chi.Router) {
		// Contacts
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", s.listContacts)
			r.Post("/", s.createContact)
			r.Post("/import-from-csv", s.importContacts)
			r.Get("/stats", s.contactStats)
			r.Get("/filters", s.contactFilters)
			r.Get("/{id}", s.getContact)
			r.Patch("/{id}/status", s.updateContactStatus)
		})

		// Templates
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", s.listTemplates)
			r.Post("/", s.createTemplate)
			r.Get("/defaults", s.defaultTemplates)
			r.Get("/preview/{type}", s.previewTemplate)
			r.Get("/{id}", s.getTemplate)
			r.Put("/{id}", s.updateTemplate)
			r.Delete("/{id}", s.deleteTemplate)
		})

		// Artists
		r.Get("/artist-template/{artistId}", s.artistTemplate)
		r.Get("/artist-preview/{artistId}", s.artistPreview)
		r.Get("/my-artists", s.myArtists)

		// Quota and delivery
		r.Get("/quota", s.getQuota)
		r.Post("/send-single", s.sendSingle)
		r.Post("/send-batch", s.sendBatch)
		r.Get("/email-log", s.emailLog)

		// Campaigns
		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", s.listCampaigns)
			r.Post("/", s.createCampaign)
			r.Get("/{id}", s.getCampaign)
			r.Put("/{id}", s.updateCampaign)
			r.Post("/{id}/activate", s.activateCampaign)
			r.Post("/{id}/complete", s.completeCampaign)
		})
	})

	return r
}
