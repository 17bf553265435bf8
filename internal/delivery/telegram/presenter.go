package telegram

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flags-quiz-bot/internal/game"
)

// maxPendingTicks bounds the backlog above which countdown edits are dropped.
const maxPendingTicks = 64

// PresenterConfig locates the media a presenter sends.
type PresenterConfig struct {
	FlagsDir  string // <flag id>.png files
	SoundsDir string // correct.ogg and wrong.ogg
}

// Presenter renders one chat's round through the Bot API. Engine callbacks
// only record state and queue work. A single worker goroutine performs the
// API calls in order.
type Presenter struct {
	bot    Sender
	chatID int64
	cfg    PresenterConfig
	logger *zap.Logger

	// Owned by the caller's goroutine (the session loop).
	round    int
	question entities.Question
	lives    int
	score    int
	buzz     bool

	mu     sync.Mutex
	cond   *sync.Cond
	closed bool
	queue  []outboxItem
	done   chan struct{}

	// Owned by the worker.
	active activeQuestion
}

// outboxItem is one queued API call. Countdown edits are marked so a newer
// one can replace an older one still waiting.
type outboxItem struct {
	fn   func()
	tick bool
}

// activeQuestion is the message carrying the current answer buttons.
type activeQuestion struct {
	messageID int
	photo     bool
	caption   string
	keyboard  tgbotapi.InlineKeyboardMarkup
	timeLeft  string
}

func NewPresenter(bot Sender, chatID int64, cfg PresenterConfig, logger *zap.Logger) *Presenter {
	p := &Presenter{
		bot:    bot,
		chatID: chatID,
		cfg:    cfg,
		logger: logger.With(zap.Int64("chat_id", chatID)),
		done:   make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	go p.run()
	return p
}

func (p *Presenter) run() {
	defer close(p.done)
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		item := p.queue[0]
		p.queue[0] = outboxItem{}
		p.queue = p.queue[1:]
		p.mu.Unlock()

		item.fn()
	}
}

// enqueue queues fn. Messages are never dropped.
func (p *Presenter) enqueue(fn func()) {
	p.push(outboxItem{fn: fn})
}

// enqueueTick queues a countdown edit. It replaces a countdown edit still
// waiting at the tail and is dropped when the backlog is too long.
func (p *Presenter) enqueueTick(fn func()) {
	p.push(outboxItem{fn: fn, tick: true})
}

func (p *Presenter) push(item outboxItem) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	if item.tick {
		if n := len(p.queue); n > 0 && p.queue[n-1].tick {
			p.queue[n-1] = item
			return
		}
		if len(p.queue) >= maxPendingTicks {
			p.logger.Debug("presenter backlog too long, dropping countdown update",
				zap.Int("pending", len(p.queue)),
			)
			return
		}
	}
	p.queue = append(p.queue, item)
	p.cond.Signal()
}

// Close sends what is still queued and stops the worker.
func (p *Presenter) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.done
		return
	}
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	<-p.done
}

// BeginRound tags the answer buttons of the following questions with round.
func (p *Presenter) BeginRound(round int) {
	p.round = round
	p.buzz = false
}

func (p *Presenter) ShowQuestion(number int, q entities.Question, options []string) {
	p.question = q

	caption := formatQuestionCaption(number, p.lives, p.score)
	keyboard := buildAnswerKeyboard(p.round, number, options)

	p.enqueue(func() {
		p.closeActive()
		p.sendQuestion(q, caption, keyboard)
	})
}

func (p *Presenter) ShowTimeRemaining(remaining time.Duration) {
	line := formatTimeLeft(remaining)
	p.enqueueTick(func() {
		if p.active.messageID == 0 || p.active.timeLeft == line {
			return
		}
		p.active.timeLeft = line
		p.editActive(p.active.caption+"\n"+line, &p.active.keyboard)
	})
}

func (p *Presenter) ShowFeedback(correct bool) {
	text := formatFeedback(correct, p.question.CountryName)
	silent := !p.buzz
	p.buzz = false

	p.enqueue(func() {
		p.closeActive()
		msg := newHTMLMessage(p.chatID, text)
		msg.DisableNotification = silent
		p.send(msg)
	})
}

func (p *Presenter) ShowTimeUp() {
	text := formatTimeUp(p.question.CountryName)
	p.enqueue(func() {
		p.closeActive()
		msg := newHTMLMessage(p.chatID, text)
		msg.DisableNotification = true
		p.send(msg)
	})
}

func (p *Presenter) ShowLivesRemaining(lives int) { p.lives = lives }
func (p *Presenter) ShowScore(score int)          { p.score = score }

func (p *Presenter) ShowRoundSummary(summary game.RoundSummary) {
	text := formatSummary(summary)
	p.enqueue(func() {
		p.closeActive()
		msg := newHTMLMessage(p.chatID, text)
		msg.ReplyMarkup = buildResultKeyboard()
		p.send(msg)
	})
}

// PlaySound sends the sound as a silent voice message.
func (p *Presenter) PlaySound(s game.Sound) {
	path := filepath.Join(p.cfg.SoundsDir, s.String()+".ogg")
	p.enqueue(func() {
		if !p.fileExists(path) {
			return
		}
		voice := tgbotapi.NewVoice(p.chatID, tgbotapi.FilePath(path))
		voice.DisableNotification = true
		p.send(voice)
	})
}

// Vibrate makes the next feedback message arrive with a notification.
// Telegram has no vibration patterns, so the duration is not used.
func (p *Presenter) Vibrate(time.Duration) {
	p.buzz = true
}

func (p *Presenter) sendQuestion(q entities.Question, caption string, keyboard tgbotapi.InlineKeyboardMarkup) {
	path := filepath.Join(p.cfg.FlagsDir, q.FlagID+".png")

	var (
		sent  tgbotapi.Message
		err   error
		photo = p.fileExists(path)
	)
	if photo {
		cfg := tgbotapi.NewPhoto(p.chatID, tgbotapi.FilePath(path))
		cfg.Caption = caption
		cfg.ParseMode = tgbotapi.ModeHTML
		cfg.ReplyMarkup = keyboard
		sent, err = p.bot.Send(cfg)
	} else {
		p.logger.Warn("flag image not found, sending text question",
			zap.String("flag_id", q.FlagID),
			zap.String("path", path),
		)
		msg := newHTMLMessage(p.chatID, caption)
		msg.ReplyMarkup = keyboard
		sent, err = p.bot.Send(msg)
	}
	if err != nil {
		p.logger.Error("failed to send question", zap.Error(err))
		return
	}

	p.active = activeQuestion{
		messageID: sent.MessageID,
		photo:     photo,
		caption:   caption,
		keyboard:  keyboard,
	}
}

// closeActive strips the answer buttons from the current question.
func (p *Presenter) closeActive() {
	if p.active.messageID == 0 {
		return
	}
	p.editActive(p.active.caption, nil)
	p.active = activeQuestion{}
}

func (p *Presenter) editActive(text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	var edit tgbotapi.Chattable
	if p.active.photo {
		cfg := tgbotapi.NewEditMessageCaption(p.chatID, p.active.messageID, text)
		cfg.ParseMode = tgbotapi.ModeHTML
		cfg.ReplyMarkup = keyboard
		edit = cfg
	} else {
		cfg := tgbotapi.NewEditMessageText(p.chatID, p.active.messageID, text)
		cfg.ParseMode = tgbotapi.ModeHTML
		cfg.ReplyMarkup = keyboard
		edit = cfg
	}

	if _, err := p.bot.Request(edit); err != nil {
		p.logger.Debug("failed to edit question", zap.Error(err))
	}
}

func (p *Presenter) send(c tgbotapi.Chattable) {
	if _, err := p.bot.Send(c); err != nil {
		p.logger.Error("failed to send telegram message", zap.Error(err))
	}
}

func (p *Presenter) fileExists(path string) bool {
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	if !errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn("failed to stat media file", zap.String("path", path), zap.Error(err))
	}
	return false
}
