package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/prince9318/smartcart-client/internal/domain"
	"github.com/prince9318/smartcart-client/internal/snapshot"
)

// Store holds the signed-in identity, if any, plus the opaque
// credential token the backend issued with it. The token is never
// inspected client-side; it only rides along on API requests.
type Store struct {
	mu       sync.RWMutex
	identity *domain.Identity
	token    string
	snap     snapshot.Store
}

func NewStore(snap snapshot.Store) *Store {
	return &Store{snap: snap}
}

// Restore loads the persisted session, trust-on-read. The session is
// live only when both the token and the identity blob are present;
// either one missing leaves the store signed out. No network
// validation happens here — a stale or revoked token surfaces as API
// errors later.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.snap.Load(ctx, snapshot.KeyToken)
	if err != nil {
		if err == snapshot.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to load token: %w", err)
	}

	data, err := s.snap.Load(ctx, snapshot.KeyUser)
	if err != nil {
		if err == snapshot.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to load identity: %w", err)
	}

	var identity domain.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return fmt.Errorf("corrupt identity snapshot: %w", err)
	}

	s.mu.Lock()
	s.identity = &identity
	s.token = string(token)
	s.mu.Unlock()
	return nil
}

// Begin records a fresh login or registration handshake: the identity
// and token are persisted and become the live session.
func (s *Store) Begin(ctx context.Context, identity domain.Identity, token string) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}
	if err := s.snap.Save(ctx, snapshot.KeyToken, []byte(token)); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	if err := s.snap.Save(ctx, snapshot.KeyUser, data); err != nil {
		return fmt.Errorf("failed to persist identity: %w", err)
	}

	s.mu.Lock()
	s.identity = &identity
	s.token = token
	s.mu.Unlock()
	return nil
}

// End signs out: the in-memory session and both persisted entries are
// cleared together in one call, so a half-cleared session cannot be
// restored on the next run.
func (s *Store) End(ctx context.Context) error {
	if err := s.snap.Delete(ctx, snapshot.KeyToken); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	if err := s.snap.Delete(ctx, snapshot.KeyUser); err != nil {
		return fmt.Errorf("failed to clear identity: %w", err)
	}

	s.mu.Lock()
	s.identity = nil
	s.token = ""
	s.mu.Unlock()
	return nil
}

// Current returns the signed-in identity, or nil.
func (s *Store) Current() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return nil
	}
	identity := *s.identity
	return &identity
}

// Token returns the credential token, empty when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAdmin gates admin-only affordances client-side; the backend
// enforces the role again on every request.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil && s.identity.Role == domain.RoleAdmin
}
