package api

import (
	"encoding/json"
	"linkbio/internal/logger"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type AccountResponse struct {
	AccountID string `json:"account_id" example:"user_2aXk9"`
	Slug      string `json:"slug" example:"jane_doe"`
	Claimed   bool   `json:"claimed"`
	PublicURL string `json:"public_url" example:"https://linkb.io/u/jane_doe"`
}

type OwnUsernameResponse struct {
	Username  *string `json:"username" example:"jane_doe"`
	PublicURL string  `json:"public_url"`
}

type ClaimUsernameRequest struct {
	Username string `json:"username" example:"jane_doe"`
}

type ClaimUsernameResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username,omitempty"`
	Error    string `json:"error,omitempty" example:"username is already taken"`
	Kind     string `json:"kind,omitempty" enums:"invalid_format,already_taken"`
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Username  string `json:"username"`
	Error     string `json:"error,omitempty" example:"username is too short (minimum 3 characters)"`
	Kind      string `json:"kind,omitempty" enums:"invalid_format,already_taken"`
}

// @Summary      Get current account
// @Description  Returns the authenticated account and the slug it is published under.
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  AccountResponse
// @Failure      401  {string}  string "Unauthorized"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /me [get]
func (s *Server) GetCurrentAccountHandler(w http.ResponseWriter, r *http.Request) {
	id := accountID(r.Context())

	slug, err := s.directory.Lookup(r.Context(), id)
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to look up slug", slog.Any("error", err))
		http.Error(w, "Failed to retrieve account", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AccountResponse{
		AccountID: id,
		Slug:      slug.String(),
		Claimed:   slug.IsClaimed(),
		PublicURL: s.publicURL(slug.String()),
	})
}

// @Summary      Get own username
// @Description  Returns the caller's claimed username, or null when none is claimed. The public URL falls back to the account ID.
// @Tags         usernames
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  OwnUsernameResponse
// @Failure      401  {string}  string "Unauthorized"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /me/username [get]
func (s *Server) GetOwnUsernameHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := s.directory.Lookup(r.Context(), accountID(r.Context()))
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to look up username", slog.Any("error", err))
		http.Error(w, "Failed to retrieve username", http.StatusInternalServerError)
		return
	}

	response := OwnUsernameResponse{PublicURL: s.publicURL(slug.String())}
	if slug.IsClaimed() {
		username := slug.String()
		response.Username = &username
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// @Summary      Claim a username
// @Description  Claims or changes the caller's username. Rejections are reported in the body with success=false.
// @Tags         usernames
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      ClaimUsernameRequest  true  "Desired username"
// @Success      200      {object}  ClaimUsernameResponse
// @Failure      400      {string}  string "Bad Request"
// @Failure      401      {string}  string "Unauthorized"
// @Failure      500      {string}  string "Internal Server Error"
// @Router       /me/username [put]
func (s *Server) ClaimUsernameHandler(w http.ResponseWriter, r *http.Request) {
	var req ClaimUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	verdict, err := s.directory.Claim(r.Context(), accountID(r.Context()), req.Username)
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to claim username", slog.String("username", req.Username), slog.Any("error", err))
		http.Error(w, "Failed to claim username", http.StatusInternalServerError)
		return
	}

	response := ClaimUsernameResponse{Success: verdict.OK(), Username: verdict.Username}
	if !verdict.OK() {
		response.Error = verdict.Reason.Message()
		response.Kind = verdict.Reason.Kind().String()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// @Summary      Check username availability
// @Description  Reports whether a username could be claimed. With a bearer token, the caller's own username is reported available.
// @Tags         usernames
// @Produce      json
// @Param        candidate  path      string  true  "Candidate username"
// @Success      200        {object}  AvailabilityResponse
// @Failure      500        {string}  string "Internal Server Error"
// @Router       /usernames/{candidate}/availability [get]
func (s *Server) CheckAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	candidate := chi.URLParam(r, "candidate")

	verdict, err := s.directory.CheckAvailability(r.Context(), accountID(r.Context()), candidate)
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to check availability", slog.String("candidate", candidate), slog.Any("error", err))
		http.Error(w, "Failed to check availability", http.StatusInternalServerError)
		return
	}

	response := AvailabilityResponse{Available: verdict.OK(), Username: candidate}
	if !verdict.OK() {
		response.Error = verdict.Reason.Message()
		response.Kind = verdict.Reason.Kind().String()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
