package profile

import (
	"context"
	"errors"
	"fmt"
	"linkbio/internal/database"
	"linkbio/internal/metrics"
	"log/slog"

	"github.com/google/uuid"
)

// Directory maps accounts to at most one globally unique username.
type Directory struct {
	store  ClaimStore
	events EventLogger
	log    *slog.Logger
}

func NewDirectory(store ClaimStore, events EventLogger, log *slog.Logger) *Directory {
	if log == nil {
		log = slog.Default()
	}
	return &Directory{
		store:  store,
		events: events,
		log:    log.With(slog.String("component", "directory")),
	}
}

// Claim reserves desired for accountID. Re-claiming one's own name is a
// no-op; claiming a different name renames the existing claim in place and
// releases the old name in the same write.
func (d *Directory) Claim(ctx context.Context, accountID, desired string) (Verdict, error) {
	if accountID == "" {
		return Verdict{}, ErrUnauthenticated
	}

	if reason := ValidateUsername(desired); reason != ReasonNone {
		metrics.UsernameClaims.WithLabelValues("invalid_format").Inc()
		return rejected(desired, reason), nil
	}

	current, err := d.store.GetClaimByAccountID(ctx, accountID)
	if err != nil {
		return Verdict{}, fmt.Errorf("load current claim: %w", err)
	}
	if current != nil && current.Username == desired {
		metrics.UsernameClaims.WithLabelValues("unchanged").Inc()
		return Verdict{Username: desired}, nil
	}

	claim, err := d.store.UpsertClaim(ctx, database.UpsertClaimParams{
		ID:        uuid.New(),
		AccountID: accountID,
		Username:  desired,
	})
	if err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			metrics.UsernameClaims.WithLabelValues("taken").Inc()
			return rejected(desired, ReasonTaken), nil
		}
		return Verdict{}, fmt.Errorf("upsert claim: %w", err)
	}
	metrics.UsernameClaims.WithLabelValues("claimed").Inc()

	payload := map[string]string{"username": claim.Username}
	if current != nil {
		payload["previous_username"] = current.Username
	}
	if err := d.events.LogEvent(ctx, accountID, database.EventUsernameClaimed, payload); err != nil {
		d.log.Warn("failed to journal username claim", slog.String("account_id", accountID), slog.Any("error", err))
	}

	return Verdict{Username: claim.Username}, nil
}

// Lookup returns the account's public slug. It is never empty.
func (d *Directory) Lookup(ctx context.Context, accountID string) (Slug, error) {
	if accountID == "" {
		return Slug{}, ErrUnauthenticated
	}
	claim, err := d.store.GetClaimByAccountID(ctx, accountID)
	if err != nil {
		return Slug{}, err
	}
	if claim == nil {
		return Fallback(accountID), nil
	}
	return Claimed(claim.Username), nil
}

// CheckAvailability reports whether candidate could be claimed. When
// accountID is set, a name already held by that same account is available.
func (d *Directory) CheckAvailability(ctx context.Context, accountID, candidate string) (Verdict, error) {
	if reason := ValidateUsername(candidate); reason != ReasonNone {
		metrics.AvailabilityChecks.WithLabelValues("invalid_format").Inc()
		return rejected(candidate, reason), nil
	}

	existing, err := d.store.GetClaimByUsername(ctx, candidate)
	if err != nil {
		return Verdict{}, err
	}
	if existing != nil && (accountID == "" || existing.AccountID != accountID) {
		metrics.AvailabilityChecks.WithLabelValues("taken").Inc()
		return rejected(candidate, ReasonTaken), nil
	}

	metrics.AvailabilityChecks.WithLabelValues("available").Inc()
	return Verdict{Username: candidate}, nil
}
