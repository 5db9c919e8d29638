package profile

import (
	"context"
	"errors"
	"fmt"
	"linkbio/internal/database"
	"linkbio/internal/models"
	"linkbio/internal/storage"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

// memStore is an in-memory stand-in for database.Store.
type memStore struct {
	mu             sync.Mutex
	claims         map[string]*models.UsernameClaim
	customizations map[string]*models.Customization
	blobs          map[string]*models.Blob
	links          map[uuid.UUID]*models.Link
	events         []string
	upserts        int
	failReads      error
	// beforePatch runs just before a customization patch is applied.
	beforePatch func()
}

func newMemStore() *memStore {
	return &memStore{
		claims:         make(map[string]*models.UsernameClaim),
		customizations: make(map[string]*models.Customization),
		blobs:          make(map[string]*models.Blob),
		links:          make(map[uuid.UUID]*models.Link),
	}
}

func (m *memStore) GetClaimByAccountID(_ context.Context, accountID string) (*models.UsernameClaim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads != nil {
		return nil, m.failReads
	}
	if c, ok := m.claims[accountID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) GetClaimByUsername(_ context.Context, username string) (*models.UsernameClaim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads != nil {
		return nil, m.failReads
	}
	for _, c := range m.claims {
		if strings.EqualFold(c.Username, username) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) UpsertClaim(_ context.Context, arg database.UpsertClaimParams) (*models.UsernameClaim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	for owner, c := range m.claims {
		if owner != arg.AccountID && strings.EqualFold(c.Username, arg.Username) {
			return nil, database.ErrUsernameTaken
		}
	}
	now := time.Now()
	if c, ok := m.claims[arg.AccountID]; ok {
		c.Username = arg.Username
		c.UpdatedAt = now
		cp := *c
		return &cp, nil
	}
	c := &models.UsernameClaim{ID: arg.ID, AccountID: arg.AccountID, Username: arg.Username, CreatedAt: now, UpdatedAt: now}
	m.claims[arg.AccountID] = c
	cp := *c
	return &cp, nil
}

func (m *memStore) GetCustomizationByAccountID(_ context.Context, accountID string) (*models.Customization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.customizations[accountID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) PatchCustomization(_ context.Context, accountID string, patch models.CustomizationPatch) (*database.PatchResult, error) {
	if m.beforePatch != nil {
		m.beforePatch()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if ref := patch.ProfileImageRef; ref != nil && *ref != "" {
		if _, ok := m.blobs[*ref]; !ok {
			return nil, database.ErrBlobNotFound
		}
	}
	c, ok := m.customizations[accountID]
	if !ok {
		c = &models.Customization{ID: uuid.New(), AccountID: accountID, CreatedAt: time.Now()}
		m.customizations[accountID] = c
	}
	previous := deref(c.ProfileImageRef)
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
	c.UpdatedAt = time.Now()

	cp := *c
	result := &database.PatchResult{Customization: &cp}
	if next := deref(c.ProfileImageRef); previous != "" && previous != next {
		result.PreviousImageRef = previous
		result.ImageRefReplaced = true
	}
	return result, nil
}

func (m *memStore) ClearProfileImage(_ context.Context, accountID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customizations[accountID]
	if !ok || c.ProfileImageRef == nil {
		return "", nil
	}
	previous := *c.ProfileImageRef
	c.ProfileImageRef = nil
	return previous, nil
}

func (m *memStore) GetBlob(_ context.Context, ref string) (*models.Blob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.blobs[ref]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) ReclaimBlob(_ context.Context, ref string, remove func(ref string) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[ref]; !ok {
		return nil
	}
	for _, c := range m.customizations {
		if deref(c.ProfileImageRef) == ref {
			return database.ErrBlobInUse
		}
	}
	if err := remove(ref); err != nil {
		return err
	}
	delete(m.blobs, ref)
	return nil
}

func (m *memStore) removeBlob(ref string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, ref)
}

func (m *memStore) addBlob(ref, accountID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[ref] = &models.Blob{Ref: ref, AccountID: accountID, ContentType: "image/png", CreatedAt: time.Now()}
}

func (m *memStore) ListLinksByAccountID(_ context.Context, accountID string) ([]models.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	links := []models.Link{}
	for _, l := range m.links {
		if l.AccountID == accountID {
			links = append(links, *l)
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Position < links[j].Position })
	return links, nil
}

func (m *memStore) CreateLink(_ context.Context, arg database.CreateLinkParams) (*models.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	position := 0
	for _, l := range m.links {
		if l.AccountID == arg.AccountID && l.Position >= position {
			position = l.Position + 1
		}
	}
	l := &models.Link{ID: arg.ID, AccountID: arg.AccountID, Title: arg.Title, URL: arg.URL, Position: position, CreatedAt: time.Now()}
	m.links[arg.ID] = l
	cp := *l
	return &cp, nil
}

func (m *memStore) UpdateLink(_ context.Context, arg database.UpdateLinkParams) (*models.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.links[arg.ID]
	if !ok || l.AccountID != arg.AccountID {
		return nil, database.ErrLinkNotFound
	}
	if arg.Title != nil {
		l.Title = *arg.Title
	}
	if arg.URL != nil {
		l.URL = *arg.URL
	}
	if arg.Position != nil {
		l.Position = *arg.Position
	}
	cp := *l
	return &cp, nil
}

func (m *memStore) DeleteLink(_ context.Context, id uuid.UUID, accountID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.links[id]
	if !ok || l.AccountID != accountID {
		return false, nil
	}
	delete(m.links, id)
	return true, nil
}

func (m *memStore) LogEvent(_ context.Context, accountID string, eventType string, _ interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, accountID+":"+eventType)
	return nil
}

// fakeBlobs records deletions and derives URLs from a per-call counter, so
// two reads of the same ref never produce the same URL.
type fakeBlobs struct {
	mu        sync.Mutex
	deleted   []string
	deleteErr error
	urls      int
}

func (f *fakeBlobs) Delete(ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, ref)
	return nil
}

func (f *fakeBlobs) URL(ref string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls++
	return fmt.Sprintf("https://blobs.test/%s?v=%d", ref, f.urls), nil
}

func (f *fakeBlobs) NewUploadTarget(accountID string) (storage.UploadTarget, error) {
	if accountID == "" {
		return storage.UploadTarget{}, errors.New("no account")
	}
	return storage.UploadTarget{
		Ref:       "upload_ref_0001",
		UploadURL: "https://blobs.test/uploads/upload_ref_0001",
		ExpiresAt: time.Now().Add(time.Minute),
	}, nil
}
