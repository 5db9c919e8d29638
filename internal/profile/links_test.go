package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestLinks_CRUD(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewLinks(store, store, nil)

	first, err := svc.Create(ctx, "acc_1", LinkInput{Title: strPtr("  Blog "), URL: strPtr("https://example.com/blog")})
	require.NoError(t, err)
	require.Equal(t, "Blog", first.Title)
	require.Equal(t, 0, first.Position)

	second, err := svc.Create(ctx, "acc_1", LinkInput{Title: strPtr("Shop"), URL: strPtr("http://shop.example.com")})
	require.NoError(t, err)
	require.Equal(t, 1, second.Position)

	links, err := svc.List(ctx, "acc_1")
	require.NoError(t, err)
	require.Len(t, links, 2)
	require.Equal(t, first.ID, links[0].ID)

	top := -1
	_, err = svc.Update(ctx, "acc_1", second.ID, LinkInput{Position: &top})
	require.ErrorIs(t, err, ErrInvalidLink)

	top = 0
	moved := 5
	_, err = svc.Update(ctx, "acc_1", first.ID, LinkInput{Position: &moved})
	require.NoError(t, err)
	_, err = svc.Update(ctx, "acc_1", second.ID, LinkInput{Position: &top, Title: strPtr("Store")})
	require.NoError(t, err)

	links, err = svc.List(ctx, "acc_1")
	require.NoError(t, err)
	require.Equal(t, "Store", links[0].Title)
	require.Equal(t, first.ID, links[1].ID)

	require.NoError(t, svc.Delete(ctx, "acc_1", first.ID))
	require.ErrorIs(t, svc.Delete(ctx, "acc_1", first.ID), ErrLinkNotFound)

	require.Contains(t, store.events, "acc_1:link.created")
	require.Contains(t, store.events, "acc_1:link.deleted")
}

func TestLinks_Validation(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewLinks(store, store, nil)

	testCases := []struct {
		name  string
		input LinkInput
	}{
		{"missing title", LinkInput{URL: strPtr("https://example.com")}},
		{"blank title", LinkInput{Title: strPtr("   "), URL: strPtr("https://example.com")}},
		{"missing url", LinkInput{Title: strPtr("x")}},
		{"relative url", LinkInput{Title: strPtr("x"), URL: strPtr("/local")}},
		{"javascript url", LinkInput{Title: strPtr("x"), URL: strPtr("javascript:alert(1)")}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "acc_1", tc.input)
			require.ErrorIs(t, err, ErrInvalidLink)
		})
	}
}

func TestLinks_OtherAccountCannotModify(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewLinks(store, store, nil)

	link, err := svc.Create(ctx, "acc_1", LinkInput{Title: strPtr("Blog"), URL: strPtr("https://example.com")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "acc_2", link.ID, LinkInput{Title: strPtr("Hijacked")})
	require.ErrorIs(t, err, ErrLinkNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "acc_2", link.ID), ErrLinkNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "acc_1", uuid.New()), ErrLinkNotFound)
}
