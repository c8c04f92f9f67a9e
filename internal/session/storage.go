// Package session provides the key-value session storage the client
// controllers read their identity from. It mirrors browser
// localStorage: flat string keys, string values, no expiry.
package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/billed-app/billed/internal/domain/entity"
)

// Well-known storage keys.
const (
	KeyUser = "user"
	KeyJWT  = "jwt"
)

// Storage is a flat key-value store shared by the client controllers.
type Storage interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)

	// Set stores value under key, replacing any previous value.
	Set(key, value string)

	// Remove deletes key. Removing an absent key is a no-op.
	Remove(key string)
}

// MemoryStorage is an in-memory Storage implementation. Safe for
// concurrent use; handlers read identity at call time rather than
// caching it, so values set by one handler are visible to the next.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (s *MemoryStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Remove deletes key.
func (s *MemoryStorage) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// CurrentUser decodes the JSON user record stored under KeyUser.
func CurrentUser(s Storage) (*entity.User, error) {
	raw, ok := s.Get(KeyUser)
	if !ok {
		return nil, fmt.Errorf("no user in session storage")
	}

	var user entity.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("failed to decode session user: %w", err)
	}
	return &user, nil
}

// SetCurrentUser stores user as JSON under KeyUser.
func SetCurrentUser(s Storage, user *entity.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session user: %w", err)
	}
	s.Set(KeyUser, string(raw))
	return nil
}

// Token returns the bearer token stored under KeyJWT, or "" when absent.
func Token(s Storage) string {
	token, _ := s.Get(KeyJWT)
	return token
}
