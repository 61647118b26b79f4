// Package tokenstore is the client-side keeper of board claim tokens and the
// remembered voter email. CLI and embedding clients persist the secrets a
// browser would keep in local storage: lose the file before claiming and the
// board is orphaned.
package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type storedEmail struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type fileFormat struct {
	ClaimTokens map[string]string `json:"claim_tokens"` // board slug -> token
	Verified    *storedEmail      `json:"verified,omitempty"`
}

// Store is a file-backed token store. Safe for concurrent use within one
// process; the file is rewritten whole on every mutation.
type Store struct {
	path string
	mu   sync.Mutex
	data fileFormat
}

// Open loads the store at path, creating parent directories as needed. A
// missing file is an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: fileFormat{ClaimTokens: make(map[string]string)}}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, err
	}
	if s.data.ClaimTokens == nil {
		s.data.ClaimTokens = make(map[string]string)
	}
	return s, nil
}

// flush must be called with mu held.
func (s *Store) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	// write-then-rename so a crash never truncates stored secrets
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// SaveClaimToken remembers the bearer secret returned at board creation.
func (s *Store) SaveClaimToken(slug, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.ClaimTokens[slug] = token
	return s.flush()
}

// ClaimToken returns the stored secret for slug, empty if unknown.
func (s *Store) ClaimToken(slug string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.ClaimTokens[slug]
}

// DeleteClaimToken forgets the secret, typically after a successful claim
// retired it server-side.
func (s *Store) DeleteClaimToken(slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data.ClaimTokens, slug)
	return s.flush()
}

// SaveVerifiedEmail remembers which email passed verification and until when.
func (s *Store) SaveVerifiedEmail(email string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Verified = &storedEmail{Email: email, ExpiresAt: expiresAt}
	return s.flush()
}

// VerifiedEmail returns the remembered email, clearing it lazily once the
// trust window has passed.
func (s *Store) VerifiedEmail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.Verified == nil {
		return ""
	}
	if !s.data.Verified.ExpiresAt.After(time.Now()) {
		s.data.Verified = nil
		_ = s.flush()
		return ""
	}
	return s.data.Verified.Email
}
