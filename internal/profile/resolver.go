package profile

import (
	"context"
	"linkbio/internal/metrics"
	"linkbio/internal/models"
	"strings"

	"golang.org/x/sync/errgroup"
)

const DefaultAccentColor = "#6366f1"

// PublicContent is what visitors see at a slug. Absent customization or
// links yield defaults, never an error.
type PublicContent struct {
	Slug            string        `json:"slug"`
	Username        string        `json:"username,omitempty"`
	ProfileImageURL string        `json:"profile_image_url,omitempty"`
	Description     string        `json:"description"`
	AccentColor     string        `json:"accent_color"`
	Links           []models.Link `json:"links"`
}

type Resolver struct {
	claims         ClaimStore
	customizations *Customizations
	links          *Links
}

func NewResolver(claims ClaimStore, customizations *Customizations, links *Links) *Resolver {
	return &Resolver{claims: claims, customizations: customizations, links: links}
}

// ResolveAccount maps a slug to an account: a claimed username wins, otherwise
// the slug is taken to be a raw account identifier.
func (r *Resolver) ResolveAccount(ctx context.Context, slug string) (accountID string, username string, err error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", "", ErrInvalidSlug
	}

	claim, err := r.claims.GetClaimByUsername(ctx, slug)
	if err != nil {
		return "", "", err
	}
	if claim != nil {
		metrics.SlugResolutions.WithLabelValues("claimed").Inc()
		return claim.AccountID, claim.Username, nil
	}

	metrics.SlugResolutions.WithLabelValues("fallback").Inc()
	return slug, "", nil
}

func (r *Resolver) Resolve(ctx context.Context, slug string) (*PublicContent, error) {
	accountID, username, err := r.ResolveAccount(ctx, slug)
	if err != nil {
		return nil, err
	}

	var (
		customization *CustomizationView
		links         []models.Link
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customization, err = r.customizations.Get(gctx, accountID)
		return err
	})
	g.Go(func() error {
		var err error
		links, err = r.links.List(gctx, accountID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	content := &PublicContent{
		Slug:        strings.TrimSpace(slug),
		Username:    username,
		AccentColor: DefaultAccentColor,
		Links:       links,
	}
	if username != "" {
		content.Slug = username
	}
	if content.Links == nil {
		content.Links = []models.Link{}
	}
	if customization != nil {
		content.ProfileImageURL = customization.ProfileImageURL
		content.Description = customization.Description
		if customization.AccentColor != "" {
			content.AccentColor = customization.AccentColor
		}
	}
	return content, nil
}

// LinksBySlug resolves slug and returns only its links.
func (r *Resolver) LinksBySlug(ctx context.Context, slug string) ([]models.Link, error) {
	accountID, _, err := r.ResolveAccount(ctx, slug)
	if err != nil {
		return nil, err
	}
	links, err := r.links.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if links == nil {
		links = []models.Link{}
	}
	return links, nil
}
