package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUsernameTaken     = errors.New("username is already taken")
	ErrBlobAlreadyExists = errors.New("blob already exists")
	ErrLinkNotFound      = errors.New("link not found or not owned by account")
	ErrBlobNotFound      = errors.New("blob not found")
	ErrBlobInUse         = errors.New("blob is referenced by a customization")
)

const (
	uqUsernameClaimsUsername = "uq_username_claims_username"
	uqBlobsPkey              = "blobs_pkey"
	fkCustomizationsImage    = "fk_customizations_profile_image_ref"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// uniqueViolation reports the constraint name of a unique_violation error.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// foreignKeyViolation reports the constraint name of a foreign_key_violation error.
func foreignKeyViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return pgErr.ConstraintName, true
	}
	return "", false
}
