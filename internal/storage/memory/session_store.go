package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"trading-journal/internal/domain"
	"trading-journal/internal/storage"
)

// slotKey is the composite identity of a session within one date.
type slotKey struct {
	date string
	hour int
}

// SessionStore is an in-memory implementation of storage.SessionStore.
type SessionStore struct {
	mu   sync.RWMutex
	data map[slotKey]*domain.Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		data: make(map[slotKey]*domain.Session),
	}
}

// GetByDateHour retrieves the session for (date, hour). Returns ErrNotFound if none exists.
func (s *SessionStore) GetByDateHour(_ context.Context, date string, hour int) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.data[slotKey{date: date, hour: hour}]
	if !exists {
		return nil, storage.ErrNotFound
	}

	cp := *sess
	return &cp, nil
}

// ListByDate retrieves all sessions for a date, ordered by hour ASC.
func (s *SessionStore) ListByDate(_ context.Context, date string) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Session
	for key, sess := range s.data {
		if key.date == date {
			cp := *sess
			result = append(result, &cp)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Hour < result[j].Hour
	})

	return result, nil
}

// ListByDatePrefix retrieves all sessions whose date starts with prefix,
// ordered by date ASC then hour ASC.
func (s *SessionStore) ListByDatePrefix(_ context.Context, prefix string) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Session
	for key, sess := range s.data {
		if strings.HasPrefix(key.date, prefix) {
			cp := *sess
			result = append(result, &cp)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].Hour < result[j].Hour
	})

	return result, nil
}

// ListRecent retrieves at most limit sessions ordered by date DESC then hour DESC.
func (s *SessionStore) ListRecent(_ context.Context, limit int) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Session, 0, len(s.data))
	for _, sess := range s.data {
		cp := *sess
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date
		}
		return result[i].Hour > result[j].Hour
	})

	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

// Upsert stores the session keyed by (date, hour), replacing any existing
// entry wholesale. The id of an existing entry is preserved.
func (s *SessionStore) Upsert(_ context.Context, sess *domain.Session) (*domain.Session, error) {
	if sess == nil || sess.ID == "" || sess.Date == "" {
		return nil, storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sess
	key := slotKey{date: sess.Date, hour: sess.Hour}
	if existing, exists := s.data[key]; exists {
		cp.ID = existing.ID
	}
	s.data[key] = &cp

	stored := cp
	return &stored, nil
}

// UpdateByID overwrites the fields of the session with id sess.ID, keeping
// its original created_at. Returns ErrNotFound if no such session exists,
// and ErrConflict if the target (date, hour) slot is held by another session.
func (s *SessionStore) UpdateByID(_ context.Context, sess *domain.Session) error {
	if sess == nil || sess.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, existing := range s.data {
		if existing.ID != sess.ID {
			continue
		}

		// The slot may move when date or hour changed, but never onto
		// another session.
		newKey := slotKey{date: sess.Date, hour: sess.Hour}
		if occupant, taken := s.data[newKey]; taken && occupant.ID != sess.ID {
			return storage.ErrConflict
		}

		cp := *sess
		cp.CreatedAt = existing.CreatedAt

		delete(s.data, key)
		s.data[newKey] = &cp
		return nil
	}

	return storage.ErrNotFound
}

var _ storage.SessionStore = (*SessionStore)(nil)
