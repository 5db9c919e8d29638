package profile

import (
	"context"
	"linkbio/internal/database"
	"linkbio/internal/models"
	"linkbio/internal/storage"

	"github.com/google/uuid"
)

type ClaimStore interface {
	GetClaimByAccountID(ctx context.Context, accountID string) (*models.UsernameClaim, error)
	GetClaimByUsername(ctx context.Context, username string) (*models.UsernameClaim, error)
	UpsertClaim(ctx context.Context, arg database.UpsertClaimParams) (*models.UsernameClaim, error)
}

type CustomizationStore interface {
	GetCustomizationByAccountID(ctx context.Context, accountID string) (*models.Customization, error)
	PatchCustomization(ctx context.Context, accountID string, patch models.CustomizationPatch) (*database.PatchResult, error)
	ClearProfileImage(ctx context.Context, accountID string) (string, error)
	GetBlob(ctx context.Context, ref string) (*models.Blob, error)
	ReclaimBlob(ctx context.Context, ref string, remove func(ref string) error) error
}

type LinkStore interface {
	ListLinksByAccountID(ctx context.Context, accountID string) ([]models.Link, error)
	CreateLink(ctx context.Context, arg database.CreateLinkParams) (*models.Link, error)
	UpdateLink(ctx context.Context, arg database.UpdateLinkParams) (*models.Link, error)
	DeleteLink(ctx context.Context, id uuid.UUID, accountID string) (bool, error)
}

type EventLogger interface {
	LogEvent(ctx context.Context, accountID string, eventType string, payload interface{}) error
}

// BlobStore is the external file storage holding profile images.
type BlobStore interface {
	Delete(ref string) error
	URL(ref string) (string, error)
	NewUploadTarget(accountID string) (storage.UploadTarget, error)
}
