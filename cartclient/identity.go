package cartclient

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var ErrNoIdentity = errors.New("no shopper identity")

// Identity is the opaque shopper id sent as userId on every cart call.
type Identity struct {
	UserID string
}

// IdentityStore persists the shopper id between sessions.
type IdentityStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, userID string) error
}

// LoadOrCreateIdentity returns the stored identity, generating and saving a guest id
// the first time.
func LoadOrCreateIdentity(ctx context.Context, store IdentityStore) (Identity, error) {
	id, err := store.Load(ctx)
	switch {
	case err == nil && strings.TrimSpace(id) != "":
		return Identity{UserID: strings.TrimSpace(id)}, nil
	case err != nil && !errors.Is(err, ErrNoIdentity):
		return Identity{}, err
	}

	id = "guest_" + uuid.NewString()
	if err := store.Save(ctx, id); err != nil {
		return Identity{}, err
	}
	return Identity{UserID: id}, nil
}

type MemoryIdentityStore struct {
	mu sync.Mutex
	id string
}

func (s *MemoryIdentityStore) Load(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == "" {
		return "", ErrNoIdentity
	}
	return s.id, nil
}

func (s *MemoryIdentityStore) Save(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = userID
	return nil
}

// FileIdentityStore keeps the id in a single file readable only by its owner.
type FileIdentityStore struct {
	Path string
}

func (s FileIdentityStore) Load(ctx context.Context) (string, error) {
	raw, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoIdentity
	}
	if err != nil {
		return "", fmt.Errorf("read identity: %w", err)
	}
	id := strings.TrimSpace(string(raw))
	if id == "" {
		return "", ErrNoIdentity
	}
	return id, nil
}

func (s FileIdentityStore) Save(ctx context.Context, userID string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("create identity dir: %w", err)
	}
	if err := os.WriteFile(s.Path, []byte(userID+"\n"), 0o600); err != nil {
		return fmt.Errorf("write identity: %w", err)
	}
	return nil
}
