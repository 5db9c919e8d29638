package profile

import (
	"context"
	"errors"
	"fmt"
	"linkbio/internal/database"
	"linkbio/internal/metrics"
	"linkbio/internal/models"
	"linkbio/internal/storage"
	"log/slog"
	"regexp"
	"time"
	"unicode/utf8"
)

const MaxDescriptionLength = 500

var accentColorPattern = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// CustomizationView is a stored customization plus its derived image URL.
// ProfileImageURL is regenerated on every read and is never persisted.
type CustomizationView struct {
	AccountID       string    `json:"account_id"`
	ProfileImageRef string    `json:"profile_image_ref,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	Description     string    `json:"description,omitempty"`
	AccentColor     string    `json:"accent_color,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Customizations struct {
	store  CustomizationStore
	blobs  BlobStore
	events EventLogger
	log    *slog.Logger
}

func NewCustomizations(store CustomizationStore, blobs BlobStore, events EventLogger, log *slog.Logger) *Customizations {
	if log == nil {
		log = slog.Default()
	}
	return &Customizations{
		store:  store,
		blobs:  blobs,
		events: events,
		log:    log.With(slog.String("component", "customizations")),
	}
}

// Get returns the account's customization, or nil when it has none.
func (c *Customizations) Get(ctx context.Context, accountID string) (*CustomizationView, error) {
	record, err := c.store.GetCustomizationByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return c.view(record), nil
}

// Upsert applies a partial update, creating the customization on first use.
// When the image is replaced the previous blob is reclaimed after commit.
func (c *Customizations) Upsert(ctx context.Context, accountID string, patch models.CustomizationPatch) (*CustomizationView, error) {
	if accountID == "" {
		return nil, ErrUnauthenticated
	}
	if err := c.validate(ctx, accountID, patch); err != nil {
		return nil, err
	}

	result, err := c.store.PatchCustomization(ctx, accountID, patch)
	if errors.Is(err, database.ErrBlobNotFound) {
		return nil, ErrImageNotOwned
	}
	if err != nil {
		return nil, fmt.Errorf("patch customization: %w", err)
	}

	if result.ImageRefReplaced {
		c.reclaim(ctx, result.PreviousImageRef, "replace")
	}

	if err := c.events.LogEvent(ctx, accountID, database.EventCustomizationUpdated, patch); err != nil {
		c.log.Warn("failed to journal customization update", slog.String("account_id", accountID), slog.Any("error", err))
	}

	return c.view(result.Customization), nil
}

// RemoveImage clears the profile image and reclaims its blob. It is a no-op
// when no image is set. Reclamation failures are logged, not returned.
func (c *Customizations) RemoveImage(ctx context.Context, accountID string) error {
	if accountID == "" {
		return ErrUnauthenticated
	}

	previous, err := c.store.ClearProfileImage(ctx, accountID)
	if err != nil {
		return fmt.Errorf("clear profile image: %w", err)
	}
	if previous == "" {
		return nil
	}

	c.reclaim(ctx, previous, "remove")

	if err := c.events.LogEvent(ctx, accountID, database.EventProfileImageRemoved, map[string]string{"ref": previous}); err != nil {
		c.log.Warn("failed to journal image removal", slog.String("account_id", accountID), slog.Any("error", err))
	}
	return nil
}

// CreateUploadTarget reserves a blob ref for accountID and returns a signed upload URL for it.
func (c *Customizations) CreateUploadTarget(ctx context.Context, accountID string) (storage.UploadTarget, error) {
	if accountID == "" {
		return storage.UploadTarget{}, ErrUnauthenticated
	}
	return c.blobs.NewUploadTarget(accountID)
}

func (c *Customizations) validate(ctx context.Context, accountID string, patch models.CustomizationPatch) error {
	if patch.AccentColor != nil && *patch.AccentColor != "" && !accentColorPattern.MatchString(*patch.AccentColor) {
		return ErrInvalidAccentColor
	}
	if patch.Description != nil && utf8.RuneCountInString(*patch.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if patch.ProfileImageRef != nil && *patch.ProfileImageRef != "" {
		blob, err := c.store.GetBlob(ctx, *patch.ProfileImageRef)
		if err != nil {
			return fmt.Errorf("load blob: %w", err)
		}
		if blob == nil || blob.AccountID != accountID {
			return ErrImageNotOwned
		}
	}
	return nil
}

// reclaim deletes a blob that is no longer referenced. The orphan sweeper
// picks up anything left behind when this fails.
func (c *Customizations) reclaim(ctx context.Context, ref, source string) {
	log := c.log.With(slog.String("ref", ref), slog.String("source", source))

	err := c.store.ReclaimBlob(ctx, ref, c.blobs.Delete)
	switch {
	case errors.Is(err, database.ErrBlobInUse):
		metrics.BlobReclaims.WithLabelValues(source, "in_use").Inc()
		log.Debug("blob was referenced again before reclaim")
	case err != nil:
		metrics.BlobReclaims.WithLabelValues(source, "error").Inc()
		log.Warn("failed to reclaim blob", slog.Any("error", err))
	default:
		metrics.BlobReclaims.WithLabelValues(source, "ok").Inc()
	}
}

func (c *Customizations) view(record *models.Customization) *CustomizationView {
	v := &CustomizationView{
		AccountID:   record.AccountID,
		Description: deref(record.Description),
		AccentColor: deref(record.AccentColor),
		UpdatedAt:   record.UpdatedAt,
	}
	if record.ProfileImageRef != nil {
		v.ProfileImageRef = *record.ProfileImageRef
		url, err := c.blobs.URL(v.ProfileImageRef)
		if err != nil {
			c.log.Warn("failed to derive image url", slog.String("ref", v.ProfileImageRef), slog.Any("error", err))
		} else {
			v.ProfileImageURL = url
		}
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
