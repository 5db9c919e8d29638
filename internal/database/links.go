package database

import (
	"context"
	"errors"
	"linkbio/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const linkColumns = `id, account_id, title, url, position, created_at`

func scanLink(row pgx.Row) (*models.Link, error) {
	var link models.Link
	err := row.Scan(
		&link.ID,
		&link.AccountID,
		&link.Title,
		&link.URL,
		&link.Position,
		&link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (q *Queries) ListLinksByAccountID(ctx context.Context, accountID string) ([]models.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE account_id = $1 ORDER BY position, created_at`
	rows, err := q.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []models.Link
	for rows.Next() {
		var link models.Link
		err := rows.Scan(&link.ID, &link.AccountID, &link.Title, &link.URL, &link.Position, &link.CreatedAt)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if links == nil {
		return []models.Link{}, nil
	}

	return links, nil
}

type CreateLinkParams struct {
	ID        uuid.UUID
	AccountID string
	Title     string
	URL       string
}

// CreateLink appends a link after the account's last one.
func (q *Queries) CreateLink(ctx context.Context, arg CreateLinkParams) (*models.Link, error) {
	query := `
		INSERT INTO links (id, account_id, title, url, position)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM links WHERE account_id = $2))
		RETURNING ` + linkColumns
	return scanLink(q.db.QueryRow(ctx, query, arg.ID, arg.AccountID, arg.Title, arg.URL))
}

type UpdateLinkParams struct {
	ID        uuid.UUID
	AccountID string
	Title     *string
	URL       *string
	Position  *int
}

func (q *Queries) UpdateLink(ctx context.Context, arg UpdateLinkParams) (*models.Link, error) {
	query := `
		UPDATE links
		SET title = COALESCE($3, title),
			url = COALESCE($4, url),
			position = COALESCE($5, position)
		WHERE id = $1 AND account_id = $2
		RETURNING ` + linkColumns
	link, err := scanLink(q.db.QueryRow(ctx, query, arg.ID, arg.AccountID, arg.Title, arg.URL, arg.Position))
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrLinkNotFound
	}
	return link, nil
}

func (q *Queries) DeleteLink(ctx context.Context, id uuid.UUID, accountID string) (bool, error) {
	res, err := q.db.Exec(ctx, `DELETE FROM links WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}
