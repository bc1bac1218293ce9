package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kervan-app/kervan/internal/constants"
)

// ErrNoSession is returned when no profile is currently signed in.
var ErrNoSession = errors.New("no active profile, run 'kervan login <profile-id>' first")

// Session persists the active profile id as a plain file in the config
// directory, surviving restarts until an explicit logout.
type Session struct {
	dir string
}

func New(configDir string) *Session {
	return &Session{dir: configDir}
}

func (s *Session) path() string {
	return filepath.Join(s.dir, constants.ProfileFileName)
}

// ActiveProfile returns the signed-in profile id, or ErrNoSession.
func (s *Session) ActiveProfile() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("failed to read profile file: %w", err)
	}

	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", ErrNoSession
	}
	return id, nil
}

// SetActiveProfile persists the profile id, creating the config directory
// when needed.
func (s *Session) SetActiveProfile(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("profile id cannot be empty")
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.path(), []byte(id+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}
	return nil
}

// Clear removes the persisted profile. Clearing an absent session is fine.
func (s *Session) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove profile file: %w", err)
	}
	return nil
}
