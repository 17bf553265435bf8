package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// fakeScheduler fires callbacks in due order when Advance moves the clock.
type fakeScheduler struct {
	clock *fakeClock
	tasks []*fakeTask
}

type fakeTask struct {
	at        time.Time
	fn        func()
	cancelled bool
	fired     bool
}

func (t *fakeTask) Cancel() { t.cancelled = true }

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) Task {
	t := &fakeTask{at: s.clock.now.Add(d), fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

func (s *fakeScheduler) Advance(d time.Duration) {
	target := s.clock.now.Add(d)
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.clock.now = next.at
		next.fired = true
		next.fn()
	}
	s.clock.now = target
}

func (s *fakeScheduler) nextDue(target time.Time) *fakeTask {
	var next *fakeTask
	for _, t := range s.tasks {
		if t.cancelled || t.fired || t.at.After(target) {
			continue
		}
		if next == nil || t.at.Before(next.at) {
			next = t
		}
	}
	return next
}

func (s *fakeScheduler) pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled && !t.fired {
			n++
		}
	}
	return n
}

type fakeSettings struct {
	highScore int
	sound     bool
	haptics   bool
	writes    []int
}

func (s *fakeSettings) HighScore() int       { return s.highScore }
func (s *fakeSettings) SoundEnabled() bool   { return s.sound }
func (s *fakeSettings) HapticsEnabled() bool { return s.haptics }
func (s *fakeSettings) SetHighScore(score int) {
	s.highScore = score
	s.writes = append(s.writes, score)
}

type shownQuestion struct {
	number   int
	question entities.Question
	options  []string
}

type recordingSink struct {
	questions []shownQuestion
	feedback  []bool
	timeUps   int
	remaining []time.Duration
	lives     []int
	scores    []int
	summaries []RoundSummary
}

func (s *recordingSink) ShowQuestion(number int, q entities.Question, options []string) {
	s.questions = append(s.questions, shownQuestion{number: number, question: q, options: options})
}
func (s *recordingSink) ShowFeedback(correct bool)              { s.feedback = append(s.feedback, correct) }
func (s *recordingSink) ShowTimeUp()                            { s.timeUps++ }
func (s *recordingSink) ShowTimeRemaining(d time.Duration)      { s.remaining = append(s.remaining, d) }
func (s *recordingSink) ShowLivesRemaining(lives int)           { s.lives = append(s.lives, lives) }
func (s *recordingSink) ShowScore(score int)                    { s.scores = append(s.scores, score) }
func (s *recordingSink) ShowRoundSummary(summary RoundSummary) { s.summaries = append(s.summaries, summary) }

func (s *recordingSink) last() shownQuestion {
	return s.questions[len(s.questions)-1]
}

type recordingEffects struct {
	sounds     []Sound
	vibrations []time.Duration
}

func (e *recordingEffects) PlaySound(s Sound)       { e.sounds = append(e.sounds, s) }
func (e *recordingEffects) Vibrate(d time.Duration) { e.vibrations = append(e.vibrations, d) }

type harness struct {
	engine    *Engine
	scheduler *fakeScheduler
	clock     *fakeClock
	settings  *fakeSettings
	sink      *recordingSink
	effects   *recordingEffects
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	h := &harness{
		scheduler: &fakeScheduler{clock: clock},
		clock:     clock,
		settings:  &fakeSettings{sound: true, haptics: true},
		sink:      &recordingSink{},
		effects:   &recordingEffects{},
	}
	h.engine = NewEngine(h.settings, h.sink, h.effects, h.scheduler,
		WithClock(clock),
		WithRand(rand.New(rand.NewSource(42))),
	)
	return h
}

func testBank(t *testing.T) *Bank {
	t.Helper()

	bank, err := NewBank([]entities.Question{
		{CountryName: "France", FlagID: "fr"},
		{CountryName: "Japan", FlagID: "jp"},
		{CountryName: "Brazil", FlagID: "br"},
		{CountryName: "Kenya", FlagID: "ke"},
		{CountryName: "Peru", FlagID: "pe"},
	})
	require.NoError(t, err)
	return bank
}

func testConfig() RoundConfig {
	cfg := DefaultRoundConfig()
	cfg.TickInterval = 0
	return cfg
}

func (h *harness) correctAnswer() string {
	q, _ := h.engine.CurrentQuestion()
	return q.CountryName
}

func (h *harness) wrongAnswer(t *testing.T) string {
	t.Helper()
	correct := h.correctAnswer()
	for _, opt := range h.engine.Options() {
		if opt != correct {
			return opt
		}
	}
	t.Fatal("no wrong option available")
	return ""
}
