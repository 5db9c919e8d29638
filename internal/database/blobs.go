package database

import (
	"context"
	"errors"
	"fmt"
	"linkbio/internal/models"
	"time"

	"github.com/jackc/pgx/v5"
)

type CreateBlobParams struct {
	Ref         string
	AccountID   string
	ContentType string
	SizeBytes   int64
}

func (q *Queries) CreateBlob(ctx context.Context, arg CreateBlobParams) (*models.Blob, error) {
	query := `
		INSERT INTO blobs (ref, account_id, content_type, size_bytes)
		VALUES ($1, $2, $3, $4)
		RETURNING ref, account_id, content_type, size_bytes, created_at
	`
	var blob models.Blob
	err := q.db.QueryRow(ctx, query, arg.Ref, arg.AccountID, arg.ContentType, arg.SizeBytes).Scan(
		&blob.Ref,
		&blob.AccountID,
		&blob.ContentType,
		&blob.SizeBytes,
		&blob.CreatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == uqBlobsPkey {
			return nil, ErrBlobAlreadyExists
		}
		return nil, err
	}
	return &blob, nil
}

func (q *Queries) GetBlob(ctx context.Context, ref string) (*models.Blob, error) {
	query := `SELECT ref, account_id, content_type, size_bytes, created_at FROM blobs WHERE ref = $1`
	var blob models.Blob
	err := q.db.QueryRow(ctx, query, ref).Scan(
		&blob.Ref,
		&blob.AccountID,
		&blob.ContentType,
		&blob.SizeBytes,
		&blob.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &blob, nil
}

func (q *Queries) DeleteBlob(ctx context.Context, ref string) error {
	_, err := q.db.Exec(ctx, `DELETE FROM blobs WHERE ref = $1`, ref)
	return err
}

// ReclaimBlob removes an unreferenced blob: its file through remove, then its
// record. The record stays locked throughout, so a customization cannot start
// referencing the blob in between. It returns ErrBlobInUse, without calling
// remove, when a customization references the blob. A blob with no record is
// left alone.
func (s *Store) ReclaimBlob(ctx context.Context, ref string, remove func(ref string) error) error {
	return s.ExecTx(ctx, func(q *Queries) error {
		var locked string
		err := q.db.QueryRow(ctx, `SELECT ref FROM blobs WHERE ref = $1 FOR UPDATE`, ref).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}

		var referenced bool
		query := `SELECT EXISTS (SELECT 1 FROM customizations WHERE profile_image_ref = $1)`
		if err := q.db.QueryRow(ctx, query, ref).Scan(&referenced); err != nil {
			return err
		}
		if referenced {
			return ErrBlobInUse
		}

		if err := remove(ref); err != nil {
			return fmt.Errorf("remove blob file: %w", err)
		}
		return q.DeleteBlob(ctx, ref)
	})
}

// ListOrphanBlobs returns blobs created before olderThan that no customization references.
func (q *Queries) ListOrphanBlobs(ctx context.Context, olderThan time.Time, limit int) ([]models.Blob, error) {
	query := `
		SELECT b.ref, b.account_id, b.content_type, b.size_bytes, b.created_at
		FROM blobs b
		WHERE b.created_at < $1
		  AND NOT EXISTS (SELECT 1 FROM customizations c WHERE c.profile_image_ref = b.ref)
		ORDER BY b.created_at
		LIMIT $2
	`
	rows, err := q.db.Query(ctx, query, olderThan, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blobs []models.Blob
	for rows.Next() {
		var blob models.Blob
		if err := rows.Scan(&blob.Ref, &blob.AccountID, &blob.ContentType, &blob.SizeBytes, &blob.CreatedAt); err != nil {
			return nil, err
		}
		blobs = append(blobs, blob)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if blobs == nil {
		return []models.Blob{}, nil
	}

	return blobs, nil
}
