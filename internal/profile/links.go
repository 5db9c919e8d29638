package profile

import (
	"context"
	"errors"
	"linkbio/internal/database"
	"linkbio/internal/models"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const MaxLinkTitleLength = 100

// LinkInput is a create or partial update request. Nil fields are left untouched on update.
type LinkInput struct {
	Title    *string `json:"title,omitempty"`
	URL      *string `json:"url,omitempty"`
	Position *int    `json:"position,omitempty"`
}

type Links struct {
	store  LinkStore
	events EventLogger
	log    *slog.Logger
}

func NewLinks(store LinkStore, events EventLogger, log *slog.Logger) *Links {
	if log == nil {
		log = slog.Default()
	}
	return &Links{
		store:  store,
		events: events,
		log:    log.With(slog.String("component", "links")),
	}
}

// List returns the account's links in display order. Never nil.
func (l *Links) List(ctx context.Context, accountID string) ([]models.Link, error) {
	return l.store.ListLinksByAccountID(ctx, accountID)
}

func (l *Links) Create(ctx context.Context, accountID string, in LinkInput) (*models.Link, error) {
	if accountID == "" {
		return nil, ErrUnauthenticated
	}
	if in.Title == nil || in.URL == nil {
		return nil, ErrInvalidLink
	}
	if !validTitle(*in.Title) || !validURL(*in.URL) {
		return nil, ErrInvalidLink
	}

	link, err := l.store.CreateLink(ctx, database.CreateLinkParams{
		ID:        uuid.New(),
		AccountID: accountID,
		Title:     strings.TrimSpace(*in.Title),
		URL:       *in.URL,
	})
	if err != nil {
		return nil, err
	}

	l.journal(ctx, accountID, database.EventLinkCreated, link)
	return link, nil
}

func (l *Links) Update(ctx context.Context, accountID string, id uuid.UUID, in LinkInput) (*models.Link, error) {
	if accountID == "" {
		return nil, ErrUnauthenticated
	}
	if in.Title != nil && !validTitle(*in.Title) {
		return nil, ErrInvalidLink
	}
	if in.URL != nil && !validURL(*in.URL) {
		return nil, ErrInvalidLink
	}
	if in.Position != nil && *in.Position < 0 {
		return nil, ErrInvalidLink
	}

	params := database.UpdateLinkParams{
		ID:        id,
		AccountID: accountID,
		URL:       in.URL,
		Position:  in.Position,
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		params.Title = &title
	}

	link, err := l.store.UpdateLink(ctx, params)
	if err != nil {
		if errors.Is(err, database.ErrLinkNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	l.journal(ctx, accountID, database.EventLinkUpdated, link)
	return link, nil
}

func (l *Links) Delete(ctx context.Context, accountID string, id uuid.UUID) error {
	if accountID == "" {
		return ErrUnauthenticated
	}

	deleted, err := l.store.DeleteLink(ctx, id, accountID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrLinkNotFound
	}

	l.journal(ctx, accountID, database.EventLinkDeleted, map[string]string{"id": id.String()})
	return nil
}

func (l *Links) journal(ctx context.Context, accountID, eventType string, payload interface{}) {
	if err := l.events.LogEvent(ctx, accountID, eventType, payload); err != nil {
		l.log.Warn("failed to journal link change",
			slog.String("account_id", accountID),
			slog.String("event_type", eventType),
			slog.Any("error", err),
		)
	}
}

func validTitle(title string) bool {
	title = strings.TrimSpace(title)
	return title != "" && len([]rune(title)) <= MaxLinkTitleLength
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
