package api

import (
	"encoding/json"
	"errors"
	"linkbio/internal/logger"
	"linkbio/internal/models"
	"linkbio/internal/profile"
	"log/slog"
	"net/http"
)

// @Summary      Get customization
// @Description  Returns the caller's page customization with a freshly signed image URL, or null when none exists.
// @Tags         customization
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profile.CustomizationView
// @Failure      401  {string}  string "Unauthorized"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /me/customization [get]
func (s *Server) GetCustomizationHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.customizations.Get(r.Context(), accountID(r.Context()))
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to get customization", slog.Any("error", err))
		http.Error(w, "Failed to retrieve customization", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// @Summary      Update customization
// @Description  Partially updates the caller's customization, creating it on first use. Omitted fields are kept; an empty string clears a field. Replacing the image deletes the previous one.
// @Tags         customization
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      models.CustomizationPatch  true  "Fields to change"
// @Success      200      {object}  profile.CustomizationView
// @Failure      400      {string}  string "Bad Request"
// @Failure      401      {string}  string "Unauthorized"
// @Failure      500      {string}  string "Internal Server Error"
// @Router       /me/customization [patch]
func (s *Server) UpsertCustomizationHandler(w http.ResponseWriter, r *http.Request) {
	var patch models.CustomizationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if patch.IsEmpty() {
		http.Error(w, "No fields to update", http.StatusBadRequest)
		return
	}

	view, err := s.customizations.Upsert(r.Context(), accountID(r.Context()), patch)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrImageNotOwned),
			errors.Is(err, profile.ErrInvalidAccentColor),
			errors.Is(err, profile.ErrDescriptionTooLong):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, profile.ErrUnauthenticated):
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		default:
			logger.FromContext(r.Context()).Error("failed to update customization", slog.Any("error", err))
			http.Error(w, "Failed to update customization", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// @Summary      Remove profile image
// @Description  Clears the caller's profile image and deletes the stored file. Succeeds when no image is set.
// @Tags         customization
// @Security     BearerAuth
// @Success      204  {null}    nil     "No Content"
// @Failure      401  {string}  string "Unauthorized"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /me/customization/image [delete]
func (s *Server) RemoveProfileImageHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.customizations.RemoveImage(r.Context(), accountID(r.Context())); err != nil {
		logger.FromContext(r.Context()).Error("failed to remove profile image", slog.Any("error", err))
		http.Error(w, "Failed to remove profile image", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
