package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(strings.TrimRight(s.config.AppHost, "/")+"/swagger/doc.json"),
	))

	r.Get("/ws", s.ServeWsHandler)
	r.Get("/health", s.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/blobs/{ref}", s.DownloadBlobHandler)
	r.Put("/uploads/{ref}", s.UploadBlobHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/public/{slug}", s.GetPublicContentHandler)
		r.Get("/public/{slug}/links", s.GetPublicLinksHandler)
		r.With(s.OptionalAuthMiddleware).Get("/usernames/{candidate}/availability", s.CheckAvailabilityHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Get("/me", s.GetCurrentAccountHandler)
			r.Get("/me/username", s.GetOwnUsernameHandler)
			r.Put("/me/username", s.ClaimUsernameHandler)
			r.Get("/me/customization", s.GetCustomizationHandler)
			r.Patch("/me/customization", s.UpsertCustomizationHandler)
			r.Delete("/me/customization/image", s.RemoveProfileImageHandler)
			r.Post("/me/uploads", s.CreateUploadTargetHandler)
			r.Get("/me/links", s.ListLinksHandler)
			r.Post("/me/links", s.CreateLinkHandler)
			r.Patch("/me/links/{linkId}", s.UpdateLinkHandler)
			r.Delete("/me/links/{linkId}", s.DeleteLinkHandler)
			r.Get("/events", s.GetEventsHandler)
		})
	})

	return r
}
