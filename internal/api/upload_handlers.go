package api

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"linkbio/internal/database"
	"linkbio/internal/logger"
	"linkbio/internal/storage"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"

	_ "linkbio/internal/models"
)

// @Summary      Create an upload target
// @Description  Reserves a storage ID and returns a signed, short-lived URL to PUT the image bytes to. Use the storage ID as profile_image_ref afterwards.
// @Tags         uploads
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  storage.UploadTarget
// @Failure      401  {string}  string "Unauthorized"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /me/uploads [post]
func (s *Server) CreateUploadTargetHandler(w http.ResponseWriter, r *http.Request) {
	target, err := s.customizations.CreateUploadTarget(r.Context(), accountID(r.Context()))
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to create upload target", slog.Any("error", err))
		http.Error(w, "Failed to create upload target", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(target)
}

// @Summary      Upload an image
// @Description  Stores the request body under a ref previously issued by /me/uploads. The token from the upload URL authorizes the request; each ref can be written once.
// @Tags         uploads
// @Accept       image/png,image/jpeg,image/gif,image/webp
// @Param        ref    path      string  true  "Storage ID"
// @Param        token  query     string  true  "Upload token"
// @Success      201    {object}  models.Blob
// @Failure      400    {string}  string "Bad Request"
// @Failure      403    {string}  string "Forbidden"
// @Failure      409    {string}  string "Conflict"
// @Failure      413    {string}  string "Request Entity Too Large"
// @Failure      500    {string}  string "Internal Server Error"
// @Router       /uploads/{ref} [put]
func (s *Server) UploadBlobHandler(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	log := logger.FromContext(r.Context()).With(slog.String("ref", ref))

	claims, err := s.storage.Signer().Verify(r.URL.Query().Get("token"), ref, storage.ActionUpload)
	if err != nil || claims.AccountID == "" {
		http.Error(w, "Invalid or expired upload token", http.StatusForbidden)
		return
	}

	body := bufio.NewReader(http.MaxBytesReader(w, r.Body, s.config.Storage.MaxUploadBytes))
	head, err := body.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "Image is too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Failed to read upload", http.StatusBadRequest)
		return
	}
	if len(head) == 0 {
		http.Error(w, "Empty upload", http.StatusBadRequest)
		return
	}

	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		http.Error(w, "Only images can be uploaded", http.StatusBadRequest)
		return
	}

	size, err := s.storage.Save(ref, body)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, os.ErrExist):
			http.Error(w, "This upload target was already used", http.StatusConflict)
		case errors.As(err, &maxErr):
			http.Error(w, "Image is too large", http.StatusRequestEntityTooLarge)
		case errors.Is(err, storage.ErrInvalidRef):
			http.Error(w, "Invalid storage ID", http.StatusBadRequest)
		default:
			log.Error("failed to save blob", slog.Any("error", err))
			http.Error(w, "Failed to store upload", http.StatusInternalServerError)
		}
		return
	}

	blob, err := s.store.CreateBlob(r.Context(), database.CreateBlobParams{
		Ref:         ref,
		AccountID:   claims.AccountID,
		ContentType: contentType,
		SizeBytes:   size,
	})
	if err != nil {
		if errors.Is(err, database.ErrBlobAlreadyExists) {
			http.Error(w, "This upload target was already used", http.StatusConflict)
			return
		}
		if delErr := s.storage.Delete(ref); delErr != nil {
			log.Warn("failed to remove unrecorded blob", slog.Any("error", delErr))
		}
		log.Error("failed to record blob", slog.Any("error", err))
		http.Error(w, "Failed to store upload", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(blob)
}

// @Summary      Download an image
// @Description  Serves a stored image behind a signed, expiring URL as returned in profile_image_url.
// @Tags         uploads
// @Produce      image/png,image/jpeg,image/gif,image/webp
// @Param        ref    path      string  true  "Storage ID"
// @Param        token  query     string  true  "Download token"
// @Success      200    {file}    file
// @Failure      403    {string}  string "Forbidden"
// @Failure      404    {string}  string "Not Found"
// @Failure      500    {string}  string "Internal Server Error"
// @Router       /blobs/{ref} [get]
func (s *Server) DownloadBlobHandler(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	if _, err := s.storage.Signer().Verify(r.URL.Query().Get("token"), ref, storage.ActionDownload); err != nil {
		http.Error(w, "Invalid or expired link", http.StatusForbidden)
		return
	}

	blob, err := s.store.GetBlob(r.Context(), ref)
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to load blob", slog.String("ref", ref), slog.Any("error", err))
		http.Error(w, "Failed to load image", http.StatusInternalServerError)
		return
	}
	if blob == nil {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}

	file, err := s.storage.Get(ref)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.Error(w, "Image not found", http.StatusNotFound)
			return
		}
		logger.FromContext(r.Context()).Error("failed to open blob", slog.String("ref", ref), slog.Any("error", err))
		http.Error(w, "Failed to load image", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", blob.ContentType)
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	io.Copy(w, file)
}
