package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flags-quiz-bot/internal/game"
	"github.com/aliskhannn/flags-quiz-bot/internal/storage"
)

var (
	ErrNoSession     = errors.New("no game in progress")
	ErrStaleAnswer   = errors.New("answer is for a question that is no longer shown")
	ErrInvalidOption = errors.New("option index out of range")
)

const loopBuffer = 16

// GameConfig holds the service-level game parameters.
type GameConfig struct {
	Round       game.RoundConfig
	IdleTimeout time.Duration // sessions without player input for this long are ended
}

// session binds one chat to its engine. engine, presenter, provider and
// round are only touched on loop.
type session struct {
	chatID    int64
	userID    int64
	loop      *game.Loop
	engine    *game.Engine
	presenter Presenter
	provider  *SettingsProvider
	stop      context.CancelFunc

	round      int
	lastActive atomic.Int64 // unix nanoseconds of the last player input
}

func (s *session) touch(now time.Time) {
	s.lastActive.Store(now.UnixNano())
}

func (s *session) idleSince() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// GameService runs one quiz session per chat.
type GameService struct {
	bank       *game.Bank
	cfg        GameConfig
	settings   SettingsSource
	presenters PresenterFactory
	sessions   *storage.SessionStorage[*session]
	logger     *zap.Logger
	now        func() time.Time

	// lifecycle serializes session creation and removal.
	lifecycle sync.Mutex
	providers sync.WaitGroup
}

func NewGameService(
	bank *game.Bank,
	cfg GameConfig,
	settings SettingsSource,
	presenters PresenterFactory,
	logger *zap.Logger,
) *GameService {
	return &GameService{
		bank:       bank,
		cfg:        cfg,
		settings:   settings,
		presenters: presenters,
		sessions:   storage.NewSessionStorage[*session](),
		logger:     logger,
		now:        time.Now,
	}
}

// Start begins a new round in the chat, superseding any round in progress.
func (s *GameService) Start(ctx context.Context, chatID, userID int64) error {
	settings, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	var replaced *session
	s.lifecycle.Lock()
	sess, ok := s.sessions.Get(chatID)
	if ok && sess.userID != userID {
		replaced = sess
		ok = false
	}
	if !ok {
		sess = s.newSession(chatID, settings)
		s.sessions.Store(chatID, sess)
	}
	sess.touch(s.now())
	s.lifecycle.Unlock()

	// Closing waits for the old presenter to flush, so it runs unlocked.
	if replaced != nil {
		s.closeSession(replaced)
	}

	var startErr error
	err = sess.loop.Do(ctx, func() {
		sess.provider.Update(settings)
		sess.round++
		sess.presenter.BeginRound(sess.round)
		startErr = sess.engine.StartRound(s.bank, s.cfg.Round)
	})
	if err != nil {
		return fmt.Errorf("start round: %w", err)
	}
	if startErr != nil {
		return fmt.Errorf("start round: %w", startErr)
	}

	s.logger.Info("round started",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", userID),
	)
	return nil
}

func (s *GameService) newSession(chatID int64, settings *entities.UserSettings) *session {
	logger := s.logger.With(zap.Int64("chat_id", chatID))

	loop := game.NewLoop(logger, loopBuffer)
	presenter := s.presenters(chatID)
	provider := NewSettingsProvider(settings, s.settings, logger)
	engine := game.NewEngine(provider, presenter, presenter, loop, game.WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)

	return &session{
		chatID:    chatID,
		userID:    settings.UserID,
		loop:      loop,
		engine:    engine,
		presenter: presenter,
		provider:  provider,
		stop:      cancel,
	}
}

// Answer submits the option at optionIndex for question number of the
// given round. Presses on buttons of earlier questions return ErrStaleAnswer.
func (s *GameService) Answer(ctx context.Context, chatID int64, round, number, optionIndex int) (game.AnswerResult, error) {
	sess, ok := s.sessions.Get(chatID)
	if !ok {
		return game.AnswerResult{}, ErrNoSession
	}
	sess.touch(s.now())

	var (
		res       game.AnswerResult
		answerErr error
	)
	err := sess.loop.Do(ctx, func() {
		if round != sess.round || number != sess.engine.QuestionNumber() {
			answerErr = ErrStaleAnswer
			return
		}

		options := sess.engine.Options()
		if optionIndex < 0 || optionIndex >= len(options) {
			answerErr = ErrInvalidOption
			return
		}

		res, answerErr = sess.engine.SubmitAnswer(options[optionIndex])
	})
	if err != nil {
		return game.AnswerResult{}, fmt.Errorf("submit answer: %w", err)
	}

	return res, answerErr
}

// Stop ends the chat's round and removes its session.
func (s *GameService) Stop(ctx context.Context, chatID int64) (game.RoundSummary, error) {
	s.lifecycle.Lock()
	sess, ok := s.sessions.Delete(chatID)
	s.lifecycle.Unlock()
	if !ok {
		return game.RoundSummary{}, ErrNoSession
	}
	defer s.closeSession(sess)

	return s.endRound(ctx, sess)
}

func (s *GameService) endRound(ctx context.Context, sess *session) (game.RoundSummary, error) {
	var (
		summary game.RoundSummary
		endErr  error
	)
	err := sess.loop.Do(ctx, func() {
		summary, endErr = sess.engine.EndRound()
	})
	if err != nil {
		return game.RoundSummary{}, fmt.Errorf("end round: %w", err)
	}
	return summary, endErr
}

// RefreshSettings reloads the player's settings into a running session.
func (s *GameService) RefreshSettings(ctx context.Context, chatID, userID int64) error {
	sess, ok := s.sessions.Get(chatID)
	if !ok || sess.userID != userID {
		return nil
	}

	settings, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	err = sess.loop.Do(ctx, func() {
		sess.provider.Update(settings)
	})
	if err != nil && !errors.Is(err, game.ErrLoopClosed) {
		return fmt.Errorf("refresh settings: %w", err)
	}
	return nil
}

// ClearHighScore reloads the player's settings into a running session and
// resets the best score the round compares against.
func (s *GameService) ClearHighScore(ctx context.Context, chatID, userID int64) error {
	sess, ok := s.sessions.Get(chatID)
	if !ok || sess.userID != userID {
		return nil
	}

	settings, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	err = sess.loop.Do(ctx, func() {
		sess.provider.ClearHighScore()
		sess.provider.Update(settings)
	})
	if err != nil && !errors.Is(err, game.ErrLoopClosed) {
		return fmt.Errorf("clear high score: %w", err)
	}
	return nil
}

// SweepIdle ends every session without player input since before
// now minus the idle timeout. It returns how many sessions were ended.
func (s *GameService) SweepIdle(ctx context.Context, now time.Time) int {
	if s.cfg.IdleTimeout <= 0 {
		return 0
	}
	cutoff := now.Add(-s.cfg.IdleTimeout)

	swept := 0
	for chatID, sess := range s.sessions.Snapshot() {
		if sess.idleSince().After(cutoff) {
			continue
		}

		s.lifecycle.Lock()
		removed := s.sessions.CompareAndDelete(chatID, func(v *session) bool { return v == sess })
		s.lifecycle.Unlock()
		if !removed {
			continue
		}

		if _, err := s.endRound(ctx, sess); err != nil && !errors.Is(err, game.ErrNoRound) {
			s.logger.Warn("failed to end idle round", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		s.closeSession(sess)
		swept++
	}

	return swept
}

// ActiveSessions returns the number of chats with a session.
func (s *GameService) ActiveSessions() int {
	return s.sessions.Len()
}

// Close ends every session and waits for pending high score writes.
func (s *GameService) Close() {
	s.lifecycle.Lock()
	sessions := s.sessions.Snapshot()
	for chatID := range sessions {
		s.sessions.Delete(chatID)
	}
	s.lifecycle.Unlock()

	for _, sess := range sessions {
		s.closeSession(sess)
	}
	s.providers.Wait()
}

// closeSession stops the loop, flushes the presenter and lets pending
// settings writes finish in the background.
func (s *GameService) closeSession(sess *session) {
	sess.stop()
	sess.loop.Close()
	sess.presenter.Close()

	s.providers.Add(1)
	go func() {
		defer s.providers.Done()
		sess.provider.Wait()
	}()
}
