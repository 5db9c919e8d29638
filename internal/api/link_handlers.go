package api

import (
	"encoding/json"
	"errors"
	"linkbio/internal/logger"
	"linkbio/internal/profile"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	_ "linkbio/internal/models"
)

// @Summary      List own links
// @Tags         links
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Link
// @Failure      401  {string}  string "Unauthorized"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /me/links [get]
func (s *Server) ListLinksHandler(w http.ResponseWriter, r *http.Request) {
	links, err := s.links.List(r.Context(), accountID(r.Context()))
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to list links", slog.Any("error", err))
		http.Error(w, "Failed to list links", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(links)
}

// @Summary      Add a link
// @Description  Appends a link after the caller's last one.
// @Tags         links
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      profile.LinkInput  true  "Title and http(s) URL"
// @Success      201      {object}  models.Link
// @Failure      400      {string}  string "Bad Request"
// @Failure      401      {string}  string "Unauthorized"
// @Failure      500      {string}  string "Internal Server Error"
// @Router       /me/links [post]
func (s *Server) CreateLinkHandler(w http.ResponseWriter, r *http.Request) {
	var req profile.LinkInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	link, err := s.links.Create(r.Context(), accountID(r.Context()), req)
	if err != nil {
		s.writeLinkError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(link)
}

// @Summary      Update a link
// @Description  Changes a link's title, URL or position. Omitted fields are kept.
// @Tags         links
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        linkId   path      string             true  "Link ID" format(uuid)
// @Param        request  body      profile.LinkInput  true  "Fields to change"
// @Success      200      {object}  models.Link
// @Failure      400      {string}  string "Bad Request"
// @Failure      401      {string}  string "Unauthorized"
// @Failure      404      {string}  string "Not Found"
// @Failure      500      {string}  string "Internal Server Error"
// @Router       /me/links/{linkId} [patch]
func (s *Server) UpdateLinkHandler(w http.ResponseWriter, r *http.Request) {
	linkID, err := uuid.Parse(chi.URLParam(r, "linkId"))
	if err != nil {
		http.Error(w, "Invalid link ID format", http.StatusBadRequest)
		return
	}

	var req profile.LinkInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	link, err := s.links.Update(r.Context(), accountID(r.Context()), linkID, req)
	if err != nil {
		s.writeLinkError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(link)
}

// @Summary      Delete a link
// @Tags         links
// @Security     BearerAuth
// @Param        linkId  path      string  true  "Link ID" format(uuid)
// @Success      204     {null}    nil     "No Content"
// @Failure      400     {string}  string "Bad Request"
// @Failure      401     {string}  string "Unauthorized"
// @Failure      404     {string}  string "Not Found"
// @Failure      500     {string}  string "Internal Server Error"
// @Router       /me/links/{linkId} [delete]
func (s *Server) DeleteLinkHandler(w http.ResponseWriter, r *http.Request) {
	linkID, err := uuid.Parse(chi.URLParam(r, "linkId"))
	if err != nil {
		http.Error(w, "Invalid link ID format", http.StatusBadRequest)
		return
	}

	if err := s.links.Delete(r.Context(), accountID(r.Context()), linkID); err != nil {
		s.writeLinkError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeLinkError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, profile.ErrInvalidLink):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, profile.ErrLinkNotFound):
		http.Error(w, "Link not found", http.StatusNotFound)
	case errors.Is(err, profile.ErrUnauthenticated):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	default:
		logger.FromContext(r.Context()).Error("link operation failed", slog.Any("error", err))
		http.Error(w, "Failed to process link", http.StatusInternalServerError)
	}
}
