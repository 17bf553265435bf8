// Package game implements the flag quiz round engine.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
)

const (
	msPerPoint       = 150 // remaining milliseconds worth one point
	timeoutPenalty   = 50
	correctVibration = 100 * time.Millisecond
	wrongVibration   = 300 * time.Millisecond
)

// round is the mutable state of the current round. It is replaced, not
// reused, when a new round starts.
type round struct {
	bank *Bank
	cfg  RoundConfig

	current   int // bank index of the current question, -1 before the first one
	options   []string
	seq       int // number of the current question within the round, starting at 1
	shown     map[int]struct{}
	deadline  time.Time
	remaining time.Duration // frozen when the answer window closes

	score           int
	lives           int
	faced           int
	correct         int
	highScoreBeaten bool
	startedAt       time.Time

	answerTimer  Task
	tickTimer    Task
	advanceTimer Task

	summary *RoundSummary
}

// Engine runs quiz rounds. It is not safe for concurrent use: every method,
// and every callback it schedules, must run on the same goroutine.
type Engine struct {
	settings  SettingsProvider
	sink      PresentationSink
	effects   Effects
	scheduler Scheduler
	clock     Clock
	rng       *rand.Rand
	logger    *zap.Logger

	state State
	round *round
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithRand overrides the random source used for question and option picks.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an idle engine.
func NewEngine(
	settings SettingsProvider,
	sink PresentationSink,
	effects Effects,
	scheduler Scheduler,
	opts ...Option,
) *Engine {
	e := &Engine{
		settings:  settings,
		sink:      sink,
		effects:   effects,
		scheduler: scheduler,
		clock:     SystemClock,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    zap.NewNop(),
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// StartRound begins a new round over bank, superseding any round in progress.
func (e *Engine) StartRound(bank *Bank, cfg RoundConfig) error {
	if err := validate(bank, cfg); err != nil {
		return err
	}

	e.cancelPending()

	now := e.clock.Now()
	e.round = &round{
		bank:      bank,
		cfg:       cfg,
		current:   -1,
		shown:     make(map[int]struct{}, bank.Len()),
		lives:     cfg.InitialLives,
		startedAt: now,
	}

	e.logger.Debug("round started",
		zap.Int("bank_size", bank.Len()),
		zap.Duration("timer", cfg.TimerDuration),
		zap.Int("lives", cfg.InitialLives),
	)

	e.sink.ShowLivesRemaining(e.round.lives)
	e.sink.ShowScore(0)
	e.present()

	return nil
}

func validate(bank *Bank, cfg RoundConfig) error {
	switch {
	case bank.Len() == 0:
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, ErrEmptyBank)
	case cfg.TimerDuration <= 0:
		return fmt.Errorf("%w: timer duration must be positive, got %s", ErrInvalidConfiguration, cfg.TimerDuration)
	case cfg.InitialLives <= 0:
		return fmt.Errorf("%w: initial lives must be positive, got %d", ErrInvalidConfiguration, cfg.InitialLives)
	case cfg.CorrectAdvanceDelay < 0 || cfg.WrongAdvanceDelay < 0 || cfg.TickInterval < 0:
		return fmt.Errorf("%w: delays must not be negative", ErrInvalidConfiguration)
	}
	return nil
}

// SelectNextQuestion moves the round to a new question and opens its answer
// window. Once every question has been shown the no-repeat rule is relaxed,
// so it never runs out of questions.
func (e *Engine) SelectNextQuestion() (entities.Question, error) {
	if e.round == nil {
		return entities.Question{}, ErrNoRound
	}
	if e.state == StateRoundOver {
		return entities.Question{}, ErrRoundOver
	}

	e.present()
	return e.round.bank.At(e.round.current), nil
}

// present draws a question, shows it and arms its timers.
func (e *Engine) present() {
	r := e.round
	e.cancelPending()

	idx := e.pick()
	r.current = idx
	r.seq++
	r.options = buildOptions(e.rng, r.bank, idx)
	r.remaining = r.cfg.TimerDuration
	r.deadline = e.clock.Now().Add(r.cfg.TimerDuration)
	e.state = StateAwaitingAnswer

	q := r.bank.At(idx)
	e.sink.ShowQuestion(r.seq, q, append([]string(nil), r.options...))
	e.sink.ShowTimeRemaining(r.remaining)

	seq := r.seq
	r.answerTimer = e.scheduler.AfterFunc(r.cfg.TimerDuration, func() { e.expire(r, seq) })
	e.scheduleTick(r, seq)
}

// pick returns a random index not yet shown in this round. When all have
// been shown it starts a new cycle that excludes only the current question.
func (e *Engine) pick() int {
	r := e.round
	n := r.bank.Len()

	if len(r.shown) >= n {
		r.shown = make(map[int]struct{}, n)
		if n > 1 && r.current >= 0 {
			r.shown[r.current] = struct{}{}
		}
	}

	candidates := make([]int, 0, n-len(r.shown))
	for i := 0; i < n; i++ {
		if _, ok := r.shown[i]; !ok {
			candidates = append(candidates, i)
		}
	}

	idx := candidates[e.rng.Intn(len(candidates))]
	r.shown[idx] = struct{}{}
	return idx
}

func (e *Engine) scheduleTick(r *round, seq int) {
	if r.cfg.TickInterval <= 0 {
		return
	}
	r.tickTimer = e.scheduler.AfterFunc(r.cfg.TickInterval, func() { e.tick(r, seq) })
}

func (e *Engine) tick(r *round, seq int) {
	if !e.isCurrent(r, seq) || e.state != StateAwaitingAnswer {
		return
	}
	remaining := e.remainingAt(e.clock.Now())
	if remaining <= 0 {
		return
	}
	e.sink.ShowTimeRemaining(remaining)
	e.scheduleTick(r, seq)
}

// isCurrent reports whether a callback scheduled for question seq of round r
// still refers to the live question.
func (e *Engine) isCurrent(r *round, seq int) bool {
	return e.round == r && r.seq == seq
}

// SubmitAnswer scores answer against the current question. Answers that
// arrive outside the answer window are rejected with ErrAnswerWindowClosed
// and change nothing.
func (e *Engine) SubmitAnswer(answer string) (AnswerResult, error) {
	if e.round == nil {
		return AnswerResult{}, ErrNoRound
	}
	if e.state != StateAwaitingAnswer {
		return AnswerResult{}, ErrAnswerWindowClosed
	}

	r := e.round
	r.remaining = e.remainingAt(e.clock.Now())
	e.cancelPending()

	r.faced++
	var res AnswerResult

	if answer == r.bank.At(r.current).CountryName {
		res.Correct = true
		res.ScoreDelta = int(r.remaining.Milliseconds() / msPerPoint)
		r.score += res.ScoreDelta
		r.correct++

		e.playSound(SoundCorrect)
		e.vibrate(correctVibration)
		e.sink.ShowFeedback(true)
		e.sink.ShowScore(r.score)
	} else {
		r.lives--

		e.playSound(SoundWrong)
		e.vibrate(wrongVibration)
		e.sink.ShowFeedback(false)
		e.sink.ShowLivesRemaining(r.lives)
	}

	e.updateHighScore()
	res.LivesRemaining = r.lives

	if r.lives == 0 {
		res.GameOver = true
		e.finish(ReasonLivesExhausted)
		return res, nil
	}

	delay := r.cfg.WrongAdvanceDelay
	if res.Correct {
		delay = r.cfg.CorrectAdvanceDelay
	}
	e.state = StateFeedback

	seq := r.seq
	r.advanceTimer = e.scheduler.AfterFunc(delay, func() { e.advance(r, seq) })

	return res, nil
}

// OnTimerExpired closes the current answer window without an answer: the
// score drops by 50 and the round moves on without consuming a life.
// It does nothing when no answer window is open.
func (e *Engine) OnTimerExpired() {
	if e.round == nil || e.state != StateAwaitingAnswer {
		return
	}

	r := e.round
	e.cancelPending()

	r.remaining = 0
	r.score -= timeoutPenalty
	r.faced++

	e.sink.ShowTimeUp()
	e.sink.ShowScore(r.score)

	e.next()
}

func (e *Engine) expire(r *round, seq int) {
	if !e.isCurrent(r, seq) {
		return
	}
	e.OnTimerExpired()
}

func (e *Engine) advance(r *round, seq int) {
	if !e.isCurrent(r, seq) || e.state != StateFeedback {
		return
	}
	e.next()
}

// next shows the following question or ends an exhausted round.
func (e *Engine) next() {
	r := e.round
	if r.cfg.Exhaustion == EndWhenExhausted && len(r.shown) >= r.bank.Len() {
		e.finish(ReasonOutOfQuestions)
		return
	}
	e.present()
}

// EndRound terminates the round and returns its summary. Calling it again
// after the round is over returns the same summary.
func (e *Engine) EndRound() (RoundSummary, error) {
	if e.round == nil {
		return RoundSummary{}, ErrNoRound
	}
	if e.state != StateRoundOver {
		e.finish(ReasonEndedByPlayer)
	}
	return *e.round.summary, nil
}

// Summary returns the summary of a finished round.
func (e *Engine) Summary() (RoundSummary, bool) {
	if e.round == nil || e.round.summary == nil {
		return RoundSummary{}, false
	}
	return *e.round.summary, true
}

// Dismiss discards the round and returns the engine to idle.
func (e *Engine) Dismiss() {
	if e.round != nil {
		e.cancelPending()
	}
	e.round = nil
	e.state = StateIdle
}

func (e *Engine) finish(reason EndReason) {
	r := e.round
	if e.state == StateAwaitingAnswer {
		r.remaining = e.remainingAt(e.clock.Now())
	}
	e.cancelPending()

	summary := RoundSummary{
		QuestionsFaced:  r.faced,
		CorrectAnswers:  r.correct,
		Elapsed:         e.clock.Now().Sub(r.startedAt),
		FinalScore:      r.score,
		HighScoreBeaten: r.highScoreBeaten,
		Reason:          reason,
	}
	r.summary = &summary
	e.state = StateRoundOver

	e.logger.Info("round finished",
		zap.Stringer("reason", reason),
		zap.Int("score", summary.FinalScore),
		zap.Int("questions_faced", summary.QuestionsFaced),
		zap.Int("correct_answers", summary.CorrectAnswers),
		zap.Duration("elapsed", summary.Elapsed),
	)

	e.sink.ShowRoundSummary(summary)
}

func (e *Engine) updateHighScore() {
	r := e.round
	if r.score > e.settings.HighScore() {
		e.settings.SetHighScore(r.score)
		r.highScoreBeaten = true
	}
}

func (e *Engine) playSound(s Sound) {
	if e.settings.SoundEnabled() {
		e.effects.PlaySound(s)
	}
}

func (e *Engine) vibrate(d time.Duration) {
	if e.settings.HapticsEnabled() {
		e.effects.Vibrate(d)
	}
}

func (e *Engine) remainingAt(now time.Time) time.Duration {
	if e.state != StateAwaitingAnswer {
		return e.round.remaining
	}
	remaining := e.round.deadline.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cancelPending cancels every scheduled callback of the current round.
func (e *Engine) cancelPending() {
	r := e.round
	if r == nil {
		return
	}
	for _, t := range []*Task{&r.answerTimer, &r.tickTimer, &r.advanceTimer} {
		if *t != nil {
			(*t).Cancel()
			*t = nil
		}
	}
}

// Score returns the score of the current round.
func (e *Engine) Score() int {
	if e.round == nil {
		return 0
	}
	return e.round.score
}

// Lives returns the lives left in the current round.
func (e *Engine) Lives() int {
	if e.round == nil {
		return 0
	}
	return e.round.lives
}

// RemainingTime returns what is left of the current answer window.
func (e *Engine) RemainingTime() time.Duration {
	if e.round == nil {
		return 0
	}
	return e.remainingAt(e.clock.Now())
}

// CurrentQuestion returns the question being asked, if any.
func (e *Engine) CurrentQuestion() (entities.Question, bool) {
	if e.round == nil || e.round.current < 0 {
		return entities.Question{}, false
	}
	return e.round.bank.At(e.round.current), true
}

// Options returns the answer choices of the current question.
func (e *Engine) Options() []string {
	if e.round == nil {
		return nil
	}
	return append([]string(nil), e.round.options...)
}

// QuestionNumber returns the 1-based number of the current question.
func (e *Engine) QuestionNumber() int {
	if e.round == nil {
		return 0
	}
	return e.round.seq
}

// QuestionsFaced returns how many questions were answered or timed out.
func (e *Engine) QuestionsFaced() int {
	if e.round == nil {
		return 0
	}
	return e.round.faced
}
