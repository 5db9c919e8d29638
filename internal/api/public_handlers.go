package api

import (
	"encoding/json"
	"errors"
	"linkbio/internal/logger"
	"linkbio/internal/profile"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	_ "linkbio/internal/models"
)

// @Summary      Get public page
// @Description  Resolves a slug (a claimed username, or else a raw account ID) to the page content visitors see. Unknown slugs yield the default page.
// @Tags         public
// @Produce      json
// @Param        slug  path      string  true  "Username or account ID"
// @Success      200   {object}  profile.PublicContent
// @Failure      400   {string}  string "Bad Request"
// @Failure      500   {string}  string "Internal Server Error"
// @Router       /public/{slug} [get]
func (s *Server) GetPublicContentHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	content, err := s.resolver.Resolve(r.Context(), slug)
	if err != nil {
		if errors.Is(err, profile.ErrInvalidSlug) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.FromContext(r.Context()).Error("failed to resolve slug", slog.String("slug", slug), slog.Any("error", err))
		http.Error(w, "Failed to load page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	json.NewEncoder(w).Encode(content)
}

// @Summary      List public links
// @Description  Returns the links published under a slug, in display order.
// @Tags         public
// @Produce      json
// @Param        slug  path      string  true  "Username or account ID"
// @Success      200   {array}   models.Link
// @Failure      400   {string}  string "Bad Request"
// @Failure      500   {string}  string "Internal Server Error"
// @Router       /public/{slug}/links [get]
func (s *Server) GetPublicLinksHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	links, err := s.resolver.LinksBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, profile.ErrInvalidSlug) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.FromContext(r.Context()).Error("failed to list links by slug", slog.String("slug", slug), slog.Any("error", err))
		http.Error(w, "Failed to list links", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(links)
}
