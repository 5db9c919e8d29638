package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/jaevor/go-nanoid"
)

var ErrInvalidRef = errors.New("invalid blob reference")

var refPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// LocalStorage keeps blobs on disk and hands out signed, expiring URLs for them.
type LocalStorage struct {
	basePath string
	signer   *Signer
	newRef   func() string
}

func NewLocalStorage(basePath string, signer *Signer) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}

	newRef, err := nanoid.Standard(21)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}

	return &LocalStorage{basePath: basePath, signer: signer, newRef: newRef}, nil
}

func ValidRef(ref string) bool {
	return refPattern.MatchString(ref)
}

// getPathFromRef shards blobs by the first two characters of their ref.
func (ls *LocalStorage) getPathFromRef(ref string) (string, error) {
	if !ValidRef(ref) {
		return "", ErrInvalidRef
	}
	return filepath.Join(ls.basePath, ref[:2], ref), nil
}

func (ls *LocalStorage) Save(ref string, data io.Reader) (int64, error) {
	filePath, err := ls.getPathFromRef(ref)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return 0, err
	}

	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(file, data)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filePath)
		return 0, err
	}

	return n, nil
}

func (ls *LocalStorage) Get(ref string) (io.ReadCloser, error) {
	filePath, err := ls.getPathFromRef(ref)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob %s not found: %w", ref, err)
		}
		return nil, err
	}

	return file, nil
}

// Delete removes a blob. Deleting a missing blob is not an error.
func (ls *LocalStorage) Delete(ref string) error {
	filePath, err := ls.getPathFromRef(ref)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if os.IsNotExist(err) {
		return nil
	}

	return err
}

// URL returns a transient retrieval URL for ref. It is regenerated on every
// call and must not be cached past its expiry.
func (ls *LocalStorage) URL(ref string) (string, error) {
	if !ValidRef(ref) {
		return "", ErrInvalidRef
	}
	return ls.signer.DownloadURL(ref)
}

// NewUploadTarget reserves a fresh ref for accountID and returns where to upload it.
func (ls *LocalStorage) NewUploadTarget(accountID string) (UploadTarget, error) {
	return ls.signer.UploadTarget(ls.newRef(), accountID)
}

func (ls *LocalStorage) Signer() *Signer {
	return ls.signer
}
