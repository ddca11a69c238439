package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"petcare/internal/session"
)

type sessionEntry struct {
	data    session.Data
	expires time.Time
}

// SessionStore guarda sesiones en memoria del proceso (modo dev / tests).
// Las expiradas se descartan al leerlas.
type SessionStore struct {
	mu   sync.Mutex
	byID map[string]sessionEntry
	now  func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		byID: make(map[string]sessionEntry),
		now:  time.Now,
	}
}

func (s *SessionStore) Get(ctx context.Context, id string) (session.Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[id]
	if !ok {
		return session.Data{}, session.ErrNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.byID, id)
		return session.Data{}, session.ErrNotFound
	}
	return cloneData(e.data), nil
}

func (s *SessionStore) Save(ctx context.Context, d session.Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[d.ID] = sessionEntry{data: cloneData(d), expires: s.now().Add(ttl)}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byID, id)
	return nil
}

// Len cuenta las sesiones guardadas (las expiradas se van recién al leerlas).
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// cloneData copia lo que Data comparte por referencia; el store nunca aliasa
// la sesión de un request.
func cloneData(d session.Data) session.Data {
	d.Flashes = slices.Clone(d.Flashes)
	if d.Identity != nil {
		id := *d.Identity
		d.Identity = &id
	}
	return d
}
