package service

import (
	"sync"
	"time"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flags-quiz-bot/internal/game"
)

type shownQuestion struct {
	round    int
	number   int
	question entities.Question
	options  []string
}

// fakePresenter records calls from the session loop.
type fakePresenter struct {
	mu        sync.Mutex
	round     int
	questions []shownQuestion
	feedback  []bool
	sounds    []game.Sound
	summaries []game.RoundSummary
	closed    bool

	// When closeGate is set, Close signals closeEntered and blocks on it.
	closeGate    chan struct{}
	closeEntered chan struct{}
}

func (p *fakePresenter) BeginRound(round int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.round = round
}

func (p *fakePresenter) ShowQuestion(number int, q entities.Question, options []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.questions = append(p.questions, shownQuestion{round: p.round, number: number, question: q, options: options})
}

func (p *fakePresenter) ShowFeedback(correct bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.feedback = append(p.feedback, correct)
}

func (p *fakePresenter) ShowRoundSummary(summary game.RoundSummary) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.summaries = append(p.summaries, summary)
}

func (p *fakePresenter) PlaySound(s game.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sounds = append(p.sounds, s)
}

func (p *fakePresenter) Close() {
	p.mu.Lock()
	gate, entered := p.closeGate, p.closeEntered
	p.mu.Unlock()

	if gate != nil {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-gate
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

func (p *fakePresenter) gateClose() (release func(), entered <-chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	gate := make(chan struct{})
	p.closeGate = gate
	p.closeEntered = make(chan struct{}, 1)
	return func() { close(gate) }, p.closeEntered
}

func (p *fakePresenter) ShowTimeUp()                     {}
func (p *fakePresenter) ShowTimeRemaining(time.Duration) {}
func (p *fakePresenter) ShowLivesRemaining(int)          {}
func (p *fakePresenter) ShowScore(int)                   {}
func (p *fakePresenter) Vibrate(time.Duration)           {}

func (p *fakePresenter) lastQuestion() shownQuestion {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.questions[len(p.questions)-1]
}

func (p *fakePresenter) soundCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sounds)
}

func (p *fakePresenter) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (q shownQuestion) correctIndex() int {
	for i, opt := range q.options {
		if opt == q.question.CountryName {
			return i
		}
	}
	return -1
}

func (q shownQuestion) wrongIndex() int {
	for i, opt := range q.options {
		if opt != q.question.CountryName {
			return i
		}
	}
	return -1
}
