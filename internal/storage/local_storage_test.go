package storage

import (
	"bytes"
	"io"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	signer := NewSigner("https://links.example.com/", "storage_test_secret", time.Minute, time.Minute)
	storage, err := NewLocalStorage(t.TempDir(), signer)
	require.NoError(t, err)
	return storage
}

func TestNewLocalStorage(t *testing.T) {
	tempDir := t.TempDir()

	storage, err := NewLocalStorage(tempDir, NewSigner("http://localhost", "s", time.Minute, time.Minute))
	require.NoError(t, err)
	require.NotNil(t, storage)
	require.Equal(t, tempDir, storage.basePath)

	_, err = os.Stat(tempDir)
	require.NoError(t, err, "Base directory should be created")
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	storage := newTestStorage(t)

	ref := "test_file_id_12345"
	content := "Hello, world!"

	n, err := storage.Save(ref, strings.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, int64(len(content)), n)

	expectedPath, err := storage.getPathFromRef(ref)
	require.NoError(t, err)
	fileInfo, err := os.Stat(expectedPath)
	require.NoError(t, err, "File should exist after save")
	require.Equal(t, int64(len(content)), fileInfo.Size())

	readCloser, err := storage.Get(ref)
	require.NoError(t, err)
	retrievedContent, err := io.ReadAll(readCloser)
	require.NoError(t, err)
	readCloser.Close()
	require.Equal(t, content, string(retrievedContent))

	err = storage.Delete(ref)
	require.NoError(t, err)

	_, err = os.Stat(expectedPath)
	require.True(t, os.IsNotExist(err), "File should not exist after delete")
}

func TestLocalStorage_SaveRefusesOverwrite(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.Save("write_once_ref", strings.NewReader("first"))
	require.NoError(t, err)

	_, err = storage.Save("write_once_ref", strings.NewReader("second"))
	require.Error(t, err)

	rc, err := storage.Get("write_once_ref")
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	require.Equal(t, "first", string(data))
}

func TestLocalStorage_GetNonExistent(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.Get("non_existent_id")
	require.Error(t, err)
}

func TestLocalStorage_DeleteNonExistent(t *testing.T) {
	storage := newTestStorage(t)

	err := storage.Delete("non_existent_id")
	require.NoError(t, err)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.Save("../../etc/passwd", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrInvalidRef)

	err = storage.Delete("../escape")
	require.ErrorIs(t, err, ErrInvalidRef)

	_, err = storage.URL("a/b")
	require.ErrorIs(t, err, ErrInvalidRef)
}

func TestLocalStorage_SaveWithLargeData(t *testing.T) {
	storage := newTestStorage(t)

	largeContent := bytes.Repeat([]byte{'a'}, 1024*1024)

	n, err := storage.Save("large_file_id", bytes.NewReader(largeContent))
	require.NoError(t, err)
	require.Equal(t, int64(len(largeContent)), n)
}

func TestLocalStorage_URLIsSignedPerCall(t *testing.T) {
	storage := newTestStorage(t)

	raw, err := storage.URL("avatar_ref_001")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(raw, "https://links.example.com/blobs/avatar_ref_001?token="))

	u, err := url.Parse(raw)
	require.NoError(t, err)
	claims, err := storage.Signer().Verify(u.Query().Get("token"), "avatar_ref_001", ActionDownload)
	require.NoError(t, err)
	require.Equal(t, "avatar_ref_001", claims.Ref)
}

func TestLocalStorage_NewUploadTarget(t *testing.T) {
	storage := newTestStorage(t)

	first, err := storage.NewUploadTarget("acc_1")
	require.NoError(t, err)
	second, err := storage.NewUploadTarget("acc_1")
	require.NoError(t, err)

	require.Len(t, first.Ref, 21)
	require.NotEqual(t, first.Ref, second.Ref)
	require.True(t, ValidRef(first.Ref))
	require.Contains(t, first.UploadURL, "/uploads/"+first.Ref+"?token=")
}
