package storage

import (
	"sync"
)

// SessionStorage keeps the active quiz session of every chat in memory.
type SessionStorage[T any] struct {
	mu       sync.RWMutex
	sessions map[int64]T
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage[T any]() *SessionStorage[T] {
	return &SessionStorage[T]{
		sessions: make(map[int64]T),
	}
}

// Store saves the session for a chat, replacing any previous one.
func (s *SessionStorage[T]) Store(chatID int64, session T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = session
}

// Get retrieves the session for a chat.
func (s *SessionStorage[T]) Get(chatID int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[chatID]
	return session, ok
}

// Delete removes the session for a chat.
func (s *SessionStorage[T]) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// Len returns the number of active sessions.
func (s *SessionStorage[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
