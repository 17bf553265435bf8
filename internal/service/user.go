package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flags-quiz-bot/internal/infra/postgres/repository"
)

// UserService registers chat users and their default settings.
type UserService struct {
	users    UserRepository
	settings SettingsRepository
}

func NewUserService(users UserRepository, settings SettingsRepository) *UserService {
	return &UserService{users: users, settings: settings}
}

func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64) error {
	return ensureUser(ctx, s.users, s.settings, userID, chatID)
}

// TxUserService registers users in PostgreSQL, writing the user row and
// default settings in one transaction.
type TxUserService struct {
	tr Transactor
}

func NewTxUserService(tr Transactor) *TxUserService {
	return &TxUserService{tr: tr}
}

func (s *TxUserService) EnsureUser(ctx context.Context, userID, chatID int64) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		userRepo := repository.NewUserRepository(tx)
		settingsRepo := repository.NewSettingsRepository(tx)

		return ensureUser(ctx, userRepo, settingsRepo, userID, chatID)
	})
}

func ensureUser(
	ctx context.Context,
	users UserRepository,
	settings SettingsRepository,
	userID, chatID int64,
) error {
	created, err := users.Save(ctx, entities.NewUser(userID, chatID))
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	if !created {
		return nil
	}

	if err := settings.Create(ctx, userID); err != nil {
		return fmt.Errorf("ensure user settings: %w", err)
	}
	return nil
}
