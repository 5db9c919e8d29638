package database

import (
	"context"
	"errors"
	"linkbio/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const usernameClaimColumns = `id, account_id, username, created_at, updated_at`

func scanUsernameClaim(row pgx.Row) (*models.UsernameClaim, error) {
	var claim models.UsernameClaim
	err := row.Scan(
		&claim.ID,
		&claim.AccountID,
		&claim.Username,
		&claim.CreatedAt,
		&claim.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &claim, nil
}

func (q *Queries) GetClaimByAccountID(ctx context.Context, accountID string) (*models.UsernameClaim, error) {
	query := `SELECT ` + usernameClaimColumns + ` FROM username_claims WHERE account_id = $1`
	return scanUsernameClaim(q.db.QueryRow(ctx, query, accountID))
}

// GetClaimByUsername matches case-insensitively, mirroring the uniqueness index.
func (q *Queries) GetClaimByUsername(ctx context.Context, username string) (*models.UsernameClaim, error) {
	query := `SELECT ` + usernameClaimColumns + ` FROM username_claims WHERE lower(username) = lower($1)`
	return scanUsernameClaim(q.db.QueryRow(ctx, query, username))
}

type UpsertClaimParams struct {
	ID        uuid.UUID
	AccountID string
	Username  string
}

// UpsertClaim creates the account's claim or renames it in place, in one
// statement. The unique index on lower(username) makes a concurrent claim of
// the same name by another account fail with ErrUsernameTaken, so at most one
// of them can succeed and a failed claim leaves no trace.
func (q *Queries) UpsertClaim(ctx context.Context, arg UpsertClaimParams) (*models.UsernameClaim, error) {
	query := `
		INSERT INTO username_claims (id, account_id, username)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id) DO UPDATE
		SET username = EXCLUDED.username, updated_at = now()
		RETURNING ` + usernameClaimColumns

	claim, err := scanUsernameClaim(q.db.QueryRow(ctx, query, arg.ID, arg.AccountID, arg.Username))
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == uqUsernameClaimsUsername {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return claim, nil
}
