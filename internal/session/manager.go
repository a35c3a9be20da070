package session

import (
	"sync"

	"github.com/theplug/theplug/internal/models"
	"github.com/theplug/theplug/internal/storage"
)

// Manager owns the per-browser sessions and the one-artifact-per-session
// invariant. The mutex only guards the cross-user map; each session's flow
// is sequential by construction (one blocking interaction turn at a time).
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	store    storage.Storage
}

func NewManager(store storage.Storage) *Manager {
	return &Manager{
		sessions: make(map[string]*models.Session),
		store:    store,
	}
}

func (m *Manager) Get(id string) (*models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Create() *models.Session {
	s := models.NewSession()
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Stage caches a new artifact for the session. Any previously cached file
// is deleted first so two artifacts never exist at once.
func (m *Manager) Stage(s *models.Session, filename string) error {
	if s.Artifact != "" && s.Artifact != filename {
		if err := m.store.DeleteFile(s.Artifact); err != nil {
			return err
		}
	}
	s.Artifact = filename
	return nil
}

// Release deletes the session's cached artifact if present and resets the
// session to its initial empty state. Calling it on an already-empty
// session is a no-op.
func (m *Manager) Release(s *models.Session) error {
	if s.Artifact != "" {
		if err := m.store.DeleteFile(s.Artifact); err != nil {
			return err
		}
	}
	s.Artifact = ""
	s.SourceURL = ""
	s.SourceFile = ""
	s.Info = nil
	s.History = nil
	s.Page = models.PageUpload
	return nil
}
