package storage

import "sync"

// SessionStorage keeps per-chat values in memory.
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

// Store saves the value for a chat, replacing any previous one.
func (s *SessionStorage[T]) Store(chatID int64, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = value
}

// Get retrieves the value stored for a chat.
func (s *SessionStorage[T]) Get(chatID int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.sessions[chatID]
	return value, ok
}

// Delete removes the value for a chat and returns it.
func (s *SessionStorage[T]) Delete(chatID int64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.sessions[chatID]
	delete(s.sessions, chatID)
	return value, ok
}

// CompareAndDelete removes the value for a chat only if match reports true for it.
func (s *SessionStorage[T]) CompareAndDelete(chatID int64, match func(T) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.sessions[chatID]
	if !ok || !match(value) {
		return false
	}
	delete(s.sessions, chatID)
	return true
}

// Snapshot returns a copy of all stored values keyed by chat.
func (s *SessionStorage[T]) Snapshot() map[int64]T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]T, len(s.sessions))
	for k, v := range s.sessions {
		out[k] = v
	}
	return out
}

// Len returns the number of stored sessions.
func (s *SessionStorage[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
