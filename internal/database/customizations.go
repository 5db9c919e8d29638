package database

import (
	"context"
	"errors"
	"linkbio/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const customizationColumns = `id, account_id, profile_image_ref, description, accent_color, created_at, updated_at`

func scanCustomization(row pgx.Row) (*models.Customization, error) {
	var c models.Customization
	err := row.Scan(
		&c.ID,
		&c.AccountID,
		&c.ProfileImageRef,
		&c.Description,
		&c.AccentColor,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (q *Queries) GetCustomizationByAccountID(ctx context.Context, accountID string) (*models.Customization, error) {
	query := `SELECT ` + customizationColumns + ` FROM customizations WHERE account_id = $1`
	return scanCustomization(q.db.QueryRow(ctx, query, accountID))
}

// lockCustomization creates the row if needed and returns it locked for update.
func (q *Queries) lockCustomization(ctx context.Context, accountID string) (*models.Customization, error) {
	insert := `INSERT INTO customizations (id, account_id) VALUES ($1, $2) ON CONFLICT (account_id) DO NOTHING`
	if _, err := q.db.Exec(ctx, insert, uuid.New(), accountID); err != nil {
		return nil, err
	}

	query := `SELECT ` + customizationColumns + ` FROM customizations WHERE account_id = $1 FOR UPDATE`
	return scanCustomization(q.db.QueryRow(ctx, query, accountID))
}

func (q *Queries) updateCustomization(ctx context.Context, c *models.Customization) (*models.Customization, error) {
	query := `
		UPDATE customizations
		SET profile_image_ref = $2, description = $3, accent_color = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + customizationColumns
	return scanCustomization(q.db.QueryRow(ctx, query, c.ID, c.ProfileImageRef, c.Description, c.AccentColor))
}

// PatchResult carries the committed record and the image reference it replaced, if any.
type PatchResult struct {
	Customization    *models.Customization
	PreviousImageRef string
	ImageRefReplaced bool
}

// applyPatch merges the supplied fields. "" clears a field.
func applyPatch(c *models.Customization, patch models.CustomizationPatch) {
	set := func(dst **string, v *string) {
		if v == nil {
			return
		}
		if *v == "" {
			*dst = nil
			return
		}
		value := *v
		*dst = &value
	}
	set(&c.ProfileImageRef, patch.ProfileImageRef)
	set(&c.Description, patch.Description)
	set(&c.AccentColor, patch.AccentColor)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// PatchCustomization merges patch into the account's customization, creating
// it on first use. The read-merge-write runs under a row lock.
func (s *Store) PatchCustomization(ctx context.Context, accountID string, patch models.CustomizationPatch) (*PatchResult, error) {
	var result PatchResult

	err := s.ExecTx(ctx, func(q *Queries) error {
		current, err := q.lockCustomization(ctx, accountID)
		if err != nil {
			return err
		}

		previous := deref(current.ProfileImageRef)
		applyPatch(current, patch)

		updated, err := q.updateCustomization(ctx, current)
		if err != nil {
			if constraint, ok := foreignKeyViolation(err); ok && constraint == fkCustomizationsImage {
				return ErrBlobNotFound
			}
			return err
		}

		result.Customization = updated
		if next := deref(updated.ProfileImageRef); previous != "" && previous != next {
			result.PreviousImageRef = previous
			result.ImageRefReplaced = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ClearProfileImage unsets the account's image and returns the ref it held,
// or "" when there was nothing to clear.
func (s *Store) ClearProfileImage(ctx context.Context, accountID string) (string, error) {
	var previous string

	err := s.ExecTx(ctx, func(q *Queries) error {
		query := `SELECT ` + customizationColumns + ` FROM customizations WHERE account_id = $1 FOR UPDATE`
		current, err := scanCustomization(q.db.QueryRow(ctx, query, accountID))
		if err != nil {
			return err
		}
		if current == nil || current.ProfileImageRef == nil {
			return nil
		}

		previous = *current.ProfileImageRef
		current.ProfileImageRef = nil
		_, err = q.updateCustomization(ctx, current)
		return err
	})
	if err != nil {
		return "", err
	}

	return previous, nil
}
