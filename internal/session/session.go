// Package session keeps the bearer credential of the logged-in user on disk,
// so a fresh client process can silently restore the previous session.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type credential struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"savedAt"`
}

// Store persists the session credential in a JSON file. The in-memory copy
// is what the HTTP adapter reads on every request, guarded for concurrent use.
type Store struct {
	mu    sync.RWMutex
	path  string
	token string
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Token implements client.TokenSource. Returns "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Load reads the persisted credential, if any. A missing file is not an
// error - it just means nobody is logged in on this machine.
func (s *Store) Load() error {
	credBytes, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Tracef("no stored credential at [%s]", s.path)
			return nil
		}
		return fmt.Errorf("read credential file: %w", err)
	}

	var cred credential
	if err := json.Unmarshal(credBytes, &cred); err != nil {
		return fmt.Errorf("unmarshal credential file: %w", err)
	}

	s.mu.Lock()
	s.token = cred.Token
	s.mu.Unlock()

	log.Debugf("loaded stored credential, saved at: %s", cred.SavedAt)
	return nil
}

func (s *Store) Save(token string) error {
	credBytes, err := json.Marshal(credential{
		Token:   token,
		SavedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}
	if err := os.WriteFile(s.path, credBytes, 0o600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	return nil
}

// Clear drops the credential from memory and disk. Removing an already
// absent file is fine.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}
