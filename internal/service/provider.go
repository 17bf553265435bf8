package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
)

const highScoreWriteTimeout = 5 * time.Second

// SettingsProvider serves a settings snapshot to the engine without
// blocking. New high scores are written back in the background.
// All methods except Wait must be called from the session's loop.
type SettingsProvider struct {
	userID         int64
	highScore      int
	soundEnabled   bool
	hapticsEnabled bool

	writer HighScoreWriter
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewSettingsProvider(settings *entities.UserSettings, writer HighScoreWriter, logger *zap.Logger) *SettingsProvider {
	p := &SettingsProvider{
		userID: settings.UserID,
		writer: writer,
		logger: logger,
	}
	p.Update(settings)
	return p
}

func (p *SettingsProvider) HighScore() int       { return p.highScore }
func (p *SettingsProvider) SoundEnabled() bool   { return p.soundEnabled }
func (p *SettingsProvider) HapticsEnabled() bool { return p.hapticsEnabled }

func (p *SettingsProvider) SetHighScore(score int) {
	p.highScore = score

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), highScoreWriteTimeout)
		defer cancel()

		if _, err := p.writer.SetHighScore(ctx, p.userID, score); err != nil {
			p.logger.Error("failed to save high score",
				zap.Int64("user_id", p.userID),
				zap.Int("score", score),
				zap.Error(err),
			)
		}
	}()
}

// Update replaces the toggles. The high score only ever grows here, since
// a write from the last round may not have landed yet.
func (p *SettingsProvider) Update(settings *entities.UserSettings) {
	p.soundEnabled = settings.SoundEnabled
	p.hapticsEnabled = settings.HapticsEnabled
	if settings.HighScore > p.highScore {
		p.highScore = settings.HighScore
	}
}

// ClearHighScore forgets the best score after the player reset it.
func (p *SettingsProvider) ClearHighScore() {
	p.highScore = 0
}

// Wait blocks until pending high score writes finish.
func (p *SettingsProvider) Wait() {
	p.wg.Wait()
}
