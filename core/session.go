package core

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Ebzefr/WebSecura/logger"
	"github.com/Ebzefr/WebSecura/models"
)

// SessionGate is the cached "current user". It only drives what the UI
// shows and which user id is attached to requests; the backend does the
// real authorization.
type SessionGate struct {
	mu    sync.Mutex
	store Storage
}

func NewSessionGate(store Storage) *SessionGate {
	return &SessionGate{store: store}
}

// Current reads the session from storage. A missing, unparsable or
// incomplete value means no session, and a bad value is deleted so the
// user is never left half logged in.
func (g *SessionGate) Current() *models.Session {
	g.mu.Lock()
	defer g.mu.Unlock()

	raw, ok, err := g.store.GetItem(models.SessionKey)
	if err != nil {
		logger.Error("Failed to read session: %v", err)
		return nil
	}
	if !ok {
		return nil
	}
	var s models.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil || !s.Valid() {
		logger.Warn("Cached session is corrupt, clearing it")
		if rmErr := g.store.RemoveItem(models.SessionKey); rmErr != nil {
			logger.Error("Failed to clear corrupt session: %v", rmErr)
		}
		return nil
	}
	return &s
}

// Set replaces the session wholesale.
func (g *SessionGate) Set(s models.Session) error {
	if !s.Valid() {
		return fmt.Errorf("refusing to store session without id and username")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.SetItem(models.SessionKey, string(data)); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	logger.Info("Session stored for user %s (id %d)", s.Username, s.ID)
	return nil
}

// Clear deletes the session.
func (g *SessionGate) Clear() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.RemoveItem(models.SessionKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// UserID is the id to attach to API calls, nil when anonymous.
func (g *SessionGate) UserID() *int64 {
	if s := g.Current(); s != nil {
		id := s.ID
		return &id
	}
	return nil
}

// RequireUser returns the session or ErrNotLoggedIn.
func (g *SessionGate) RequireUser() (*models.Session, error) {
	s := g.Current()
	if s == nil {
		return nil, ErrNotLoggedIn
	}
	return s, nil
}

// RequireAdmin returns the session when it claims admin rights.
func (g *SessionGate) RequireAdmin() (*models.Session, error) {
	s, err := g.RequireUser()
	if err != nil {
		return nil, err
	}
	if !s.IsAdmin {
		return nil, ErrNotAdmin
	}
	return s, nil
}
