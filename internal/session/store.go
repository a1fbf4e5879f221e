// Package session persists the auth session across process restarts in a
// local SQLite key-value table. Token validity is never judged here; callers
// treat backend 401/403 responses as the source of truth.
package session

import (
	"database/sql"
	"errors"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"droneRentalMarketplace/models"
)

// Logical keys for the persisted session fields.
const (
	keyToken         = "token"
	keyMobile        = "mobile"
	keySelectedRole  = "role"
	keyRoles         = "roles"
	keyPreferredRole = "preferred_role"
	keyProfileName   = "profile_name"
	keyOnboarding    = "onboarding_complete"
)

// Store is a persistent key-value session store backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the session store at path. An in-memory store can
// be opened with a "file:...?mode=memory" DSN for tests.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "session.db"
	}
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, err
	}
	// Pragmas for robustness
	// journal_mode may not be supported in some contexts (e.g., in-memory). Ignore errors.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := d.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = d.Close()
		return nil, err
	}
	if _, err := d.Exec(`CREATE TABLE IF NOT EXISTS session_store (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL
    )`); err != nil {
		_ = d.Close()
		return nil, err
	}
	return &Store{db: d}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return errors.New("nil store")
	}
	return s.db.Close()
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM session_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// set writes a value, or removes the key entirely when value is empty so
// absent and cleared fields are indistinguishable.
func (s *Store) set(key, value string) error {
	if value == "" {
		_, err := s.db.Exec(`DELETE FROM session_store WHERE key = ?`, key)
		return err
	}
	_, err := s.db.Exec(`INSERT INTO session_store(key, value) VALUES(?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// Token returns the persisted bearer token, empty when signed out.
func (s *Store) Token() (string, error) { return s.get(keyToken) }

// SetToken persists the bearer token; empty removes it.
func (s *Store) SetToken(token string) error { return s.set(keyToken, token) }

// Mobile returns the persisted mobile number.
func (s *Store) Mobile() (string, error) { return s.get(keyMobile) }

// SetMobile persists the mobile number; empty removes it.
func (s *Store) SetMobile(mobile string) error { return s.set(keyMobile, mobile) }

// ProfileName returns the persisted display name.
func (s *Store) ProfileName() (string, error) { return s.get(keyProfileName) }

// SetProfileName persists the display name; empty removes it.
func (s *Store) SetProfileName(name string) error { return s.set(keyProfileName, name) }

// SelectedRole returns the persisted active role, if any.
func (s *Store) SelectedRole() (models.Role, bool, error) {
	return s.getRole(keySelectedRole)
}

// SetSelectedRole persists the active role.
func (s *Store) SetSelectedRole(role models.Role) error {
	return s.set(keySelectedRole, role.Wire())
}

// ClearSelectedRole removes the active role.
func (s *Store) ClearSelectedRole() error { return s.set(keySelectedRole, "") }

// PreferredRole returns the role chosen during onboarding, if any.
func (s *Store) PreferredRole() (models.Role, bool, error) {
	return s.getRole(keyPreferredRole)
}

// SetPreferredRole persists the onboarding role preference.
func (s *Store) SetPreferredRole(role models.Role) error {
	return s.set(keyPreferredRole, role.Wire())
}

func (s *Store) getRole(key string) (models.Role, bool, error) {
	raw, err := s.get(key)
	if err != nil {
		return "", false, err
	}
	role, ok := models.ParseRole(raw)
	return role, ok, nil
}

// AvailableRoles returns the persisted role set, dropping unknown values.
func (s *Store) AvailableRoles() ([]models.Role, error) {
	raw, err := s.get(keyRoles)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	return models.ParseRoles(strings.Split(raw, ",")), nil
}

// SetAvailableRoles persists the role set; an empty set removes the key.
func (s *Store) SetAvailableRoles(roles []models.Role) error {
	wire := make([]string, 0, len(roles))
	for _, r := range roles {
		wire = append(wire, r.Wire())
	}
	return s.set(keyRoles, strings.Join(wire, ","))
}

// HasSeenOnboarding reports whether the onboarding flow was completed.
func (s *Store) HasSeenOnboarding() (bool, error) {
	raw, err := s.get(keyOnboarding)
	if err != nil {
		return false, err
	}
	return raw == "1", nil
}

// SetHasSeenOnboarding persists the onboarding-seen flag.
func (s *Store) SetHasSeenOnboarding(seen bool) error {
	if !seen {
		return s.set(keyOnboarding, "")
	}
	return s.set(keyOnboarding, "1")
}

// Clear wipes every session field in a single statement, so callers never
// observe a partially cleared store.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM session_store`)
	return err
}
