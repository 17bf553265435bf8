package game

import (
	"time"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
)

// SettingsProvider gives the engine access to player preferences and the
// persisted high score. Implementations must not block.
type SettingsProvider interface {
	HighScore() int
	SetHighScore(score int)
	SoundEnabled() bool
	HapticsEnabled() bool
}

// PresentationSink receives notifications about what to render. number is
// the 1-based position of the question within the round.
type PresentationSink interface {
	ShowQuestion(number int, q entities.Question, options []string)
	ShowFeedback(correct bool)
	ShowTimeUp()
	ShowTimeRemaining(remaining time.Duration)
	ShowLivesRemaining(lives int)
	ShowScore(score int)
	ShowRoundSummary(summary RoundSummary)
}

// Sound identifies a feedback sound effect.
type Sound int

const (
	SoundCorrect Sound = iota
	SoundWrong
)

func (s Sound) String() string {
	switch s {
	case SoundCorrect:
		return "correct"
	case SoundWrong:
		return "wrong"
	default:
		return "unknown"
	}
}

// Effects plays sounds and vibrations. The engine gates calls with the
// player's sound and haptics settings.
type Effects interface {
	PlaySound(s Sound)
	Vibrate(d time.Duration)
}

// State is the engine's position in the round lifecycle.
type State int

const (
	StateIdle           State = iota // no round
	StateAwaitingAnswer              // question shown, answer timer running
	StateFeedback                    // answer scored, next question pending
	StateRoundOver                   // summary produced
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateFeedback:
		return "feedback"
	case StateRoundOver:
		return "round_over"
	default:
		return "unknown"
	}
}

// ExhaustionPolicy decides what happens once every question has been shown.
type ExhaustionPolicy int

const (
	// EndWhenExhausted ends the round with ReasonOutOfQuestions.
	EndWhenExhausted ExhaustionPolicy = iota
	// AllowRepeats starts a new cycle through the bank.
	AllowRepeats
)

// EndReason tells why a round finished.
type EndReason int

const (
	ReasonEndedByPlayer EndReason = iota
	ReasonLivesExhausted
	ReasonOutOfQuestions
)

func (r EndReason) String() string {
	switch r {
	case ReasonEndedByPlayer:
		return "ended_by_player"
	case ReasonLivesExhausted:
		return "lives_exhausted"
	case ReasonOutOfQuestions:
		return "out_of_questions"
	default:
		return "unknown"
	}
}

// RoundConfig holds the parameters of a single round.
type RoundConfig struct {
	TimerDuration       time.Duration // answer window per question
	InitialLives        int
	CorrectAdvanceDelay time.Duration // pause before the next question after a correct answer
	WrongAdvanceDelay   time.Duration // pause before the next question after a wrong answer
	TickInterval        time.Duration // how often ShowTimeRemaining fires, 0 disables ticks
	Exhaustion          ExhaustionPolicy
}

// DefaultRoundConfig returns a 15 second answer window and 10 lives.
func DefaultRoundConfig() RoundConfig {
	return RoundConfig{
		TimerDuration:       15 * time.Second,
		InitialLives:        10,
		CorrectAdvanceDelay: 2 * time.Second,
		WrongAdvanceDelay:   time.Second,
		TickInterval:        time.Second,
		Exhaustion:          EndWhenExhausted,
	}
}

// AnswerResult describes the outcome of a submitted answer.
type AnswerResult struct {
	Correct        bool
	ScoreDelta     int
	LivesRemaining int
	GameOver       bool
}

// RoundSummary is the frozen outcome of a finished round.
type RoundSummary struct {
	QuestionsFaced  int
	CorrectAnswers  int
	Elapsed         time.Duration
	FinalScore      int
	HighScoreBeaten bool
	Reason          EndReason
}
