package api

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/boostify/outreach/internal/config"
	"github.com/boostify/outreach/internal/service/artist"
	"github.com/boostify/outreach/internal/service/campaign"
	"github.com/boostify/outreach/internal/service/contact"
	"github.com/boostify/outreach/internal/service/delivery"
	"github.com/boostify/outreach/internal/service/quota"
	"github.com/boostify/outreach/internal/service/template"
)

// Services bundles the domain services the HTTP layer dispatches to.
type Services struct {
	Contacts  *contact.Service
	Templates *template.Service
	Artists   *artist.Service
	Quota     *quota.Service
	Delivery  *delivery.Service
	Campaigns *campaign.Service
}

// Server represents the API server
type Server struct {
	config   config.ServerConfig
	svc      Services
	health   *HealthChecker
	validate *validator.Validate
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a new API server. health may be nil.
func NewServer(cfg config.ServerConfig, svc Services, health *HealthChecker) *Server {
	s := &Server{
		config:   cfg,
		svc:      svc,
		health:   health,
		validate: newValidator(),
	}
	s.router = SetupRoutes(s)
	return s
}

// newValidator reports fields by their JSON names so 400 details match
// what the client sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	s.server = &http.Server{
		Addr:    s.config.Addr(),
		Handler: s.router,
		// batch sends run inside the request, so writes get a long deadline
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing
func (s *Server) Handler() http.Handler {
	return s.router
}
