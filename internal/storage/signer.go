package storage

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ActionDownload = "download"
	ActionUpload   = "upload"
)

var ErrTokenScope = errors.New("token does not grant this action")

// BlobClaims scope a signed URL to one blob and one action.
type BlobClaims struct {
	Ref       string `json:"ref"`
	Action    string `json:"act"`
	AccountID string `json:"acc,omitempty"`
	jwt.RegisteredClaims
}

type UploadTarget struct {
	Ref       string    `json:"storage_id"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Signer mints and verifies the short-lived tokens embedded in blob URLs.
type Signer struct {
	secret    []byte
	baseURL   string
	urlTTL    time.Duration
	uploadTTL time.Duration
	now       func() time.Time
}

func NewSigner(baseURL, secret string, urlTTL, uploadTTL time.Duration) *Signer {
	return &Signer{
		secret:    []byte(secret),
		baseURL:   strings.TrimRight(baseURL, "/"),
		urlTTL:    urlTTL,
		uploadTTL: uploadTTL,
		now:       time.Now,
	}
}

func (s *Signer) sign(ref, action, accountID string, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)

	claims := &BlobClaims{
		Ref:       ref,
		Action:    action,
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (s *Signer) DownloadURL(ref string) (string, error) {
	token, _, err := s.sign(ref, ActionDownload, "", s.urlTTL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/blobs/%s?token=%s", s.baseURL, url.PathEscape(ref), url.QueryEscape(token)), nil
}

func (s *Signer) UploadTarget(ref, accountID string) (UploadTarget, error) {
	token, expiresAt, err := s.sign(ref, ActionUpload, accountID, s.uploadTTL)
	if err != nil {
		return UploadTarget{}, err
	}
	return UploadTarget{
		Ref:       ref,
		UploadURL: fmt.Sprintf("%s/uploads/%s?token=%s", s.baseURL, url.PathEscape(ref), url.QueryEscape(token)),
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks that token is valid, unexpired and grants action on ref.
func (s *Signer) Verify(token, ref, action string) (*BlobClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &BlobClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*BlobClaims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrInvalidKey
	}
	if claims.Ref != ref || claims.Action != action {
		return nil, ErrTokenScope
	}
	return claims, nil
}
