package storage

import (
	"context"
	"sync"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
)

// UserStorage keeps registered users in memory.
type UserStorage struct {
	mu    sync.RWMutex
	users map[int64]entities.User
}

// NewUserStorage creates a new UserStorage.
func NewUserStorage() *UserStorage {
	return &UserStorage{
		users: make(map[int64]entities.User),
	}
}

// Save inserts a new user or refreshes the chat of an existing one.
// It reports whether the user was created.
func (s *UserStorage) Save(_ context.Context, user *entities.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if ok {
		existing.ChatID = user.ChatID
		s.users[user.ID] = existing
		return false, nil
	}

	s.users[user.ID] = *user
	return true, nil
}
