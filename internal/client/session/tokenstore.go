package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/decipline/internal/client/repositories/metadata"
	"github.com/golang-jwt/jwt/v5"
)

// StorageKey is the metadata key of the persisted session record.
const StorageKey = "decipline_auth"

var (
	// ErrNoSession means there is no usable persisted session.
	ErrNoSession = errors.New("no persisted session")
	// ErrTokenExpired is returned for a persisted JWT whose exp has passed.
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrNoSession)
)

// TokenStore persists the session token between runs.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type record struct {
	Token string `json:"token"`
}

// MetadataTokenStore keeps the token as a JSON record {"token": "..."} in
// the metadata repository.
type MetadataTokenStore struct {
	repo metadata.Repository
	now  func() time.Time
}

func NewMetadataTokenStore(repo metadata.Repository) *MetadataTokenStore {
	return &MetadataTokenStore{repo: repo, now: time.Now}
}

// Load returns the persisted token. Missing, malformed and expired records
// all yield an error matching ErrNoSession.
func (s *MetadataTokenStore) Load(ctx context.Context) (string, error) {
	e, err := s.repo.Get(ctx, StorageKey)
	if errors.Is(err, metadata.ErrNotFound) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	var rec record
	if err := json.Unmarshal(e.Value, &rec); err != nil {
		return "", fmt.Errorf("%w: malformed record: %v", ErrNoSession, err)
	}
	token := strings.TrimSpace(rec.Token)
	if token == "" {
		return "", fmt.Errorf("%w: empty token", ErrNoSession)
	}
	if expired(token, s.now()) {
		return "", ErrTokenExpired
	}
	return token, nil
}

func (s *MetadataTokenStore) Save(ctx context.Context, token string) error {
	b, err := json.Marshal(record{Token: token})
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, StorageKey, b)
}

func (s *MetadataTokenStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, StorageKey)
}

// expired reports whether token is a JWT with an exp claim before now. The
// signature is not checked; opaque tokens are never considered expired.
func expired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
