// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flags-quiz-bot/internal/game"
)

const (
	msgWelcome = "<b>🌍 Flags Quiz</b>\n\n" +
		"Guess the country of each flag before the timer runs out.\n\n" +
		"▶️ /play — start a round\n" +
		"⚙️ /settings — sound, haptics and high score\n" +
		"🏆 /best — your best score"
	msgInstructions = "<b>📖 How to play</b>\n\n" +
		"• Every flag comes with four countries, pick the right one.\n" +
		"• You have %d seconds per flag. A quicker answer earns more points.\n" +
		"• A wrong answer costs a life, you start with %d.\n" +
		"• If time runs out you lose 50 points but keep your lives.\n" +
		"• The round ends when your lives or the flags run out, or with /stop."
	msgHelp = "Commands:\n\n" +
		"/start — main menu\n" +
		"/play — how to play and start a round\n" +
		"/stop — end the current round\n" +
		"/settings — sound, haptics and high score\n" +
		"/best — your best score"
	msgClearConfirm = "🗑 Clear your high score? This cannot be undone."
)

// Error and notice messages.
const (
	msgInternalError       = "Something went wrong. Please try again later."
	msgUnknownCommand      = "Unknown command. Send /help for the list of commands."
	msgSettingsUnavailable = "Could not load settings. Please try again later."
	msgNoGame              = "No round in progress. Send /play to start one."
	msgQuestionOver        = "This question is over."
	msgHighScoreCleared    = "High score cleared"
)

// newHTMLMessage creates a message with HTML parse mode.
func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func formatInstructions(timer time.Duration, lives int) string {
	return fmt.Sprintf(msgInstructions, int(timer.Seconds()), lives)
}

// formatQuestionCaption renders the caption under a flag.
func formatQuestionCaption(number, lives, score int) string {
	return fmt.Sprintf(
		"<b>Flag #%d</b>\nWhich country does this flag belong to?\n\n❤️ %d   ⭐ %d",
		number, lives, score,
	)
}

// formatTimeLeft renders the remaining answer time rounded up to seconds.
func formatTimeLeft(remaining time.Duration) string {
	seconds := int(math.Ceil(remaining.Seconds()))
	return fmt.Sprintf("⏱ Time left: %d seconds", seconds)
}

func formatFeedback(correct bool, country string) string {
	if correct {
		return "✅ Correct answer!"
	}
	return fmt.Sprintf("❌ Wrong answer. It was <b>%s</b>.", html.EscapeString(country))
}

func formatTimeUp(country string) string {
	return fmt.Sprintf("⏰ Time's up! It was <b>%s</b>. −50 points.", html.EscapeString(country))
}

func formatReason(reason game.EndReason) string {
	switch reason {
	case game.ReasonLivesExhausted:
		return "💔 Game over! Out of lives."
	case game.ReasonOutOfQuestions:
		return "🏁 Out of questions, you have seen every flag."
	default:
		return "⏹ Round ended."
	}
}

// formatSummary renders the end of round report.
func formatSummary(s game.RoundSummary) string {
	var b strings.Builder
	b.WriteString(formatReason(s.Reason))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "<b>Score:</b> %d\n", s.FinalScore)
	fmt.Fprintf(&b, "<b>Total questions faced:</b> %d\n", s.QuestionsFaced)
	fmt.Fprintf(&b, "<b>Total correct answers:</b> %d\n", s.CorrectAnswers)
	fmt.Fprintf(&b, "<b>Total time taken:</b> %d seconds", int(s.Elapsed.Seconds()))
	if s.HighScoreBeaten {
		b.WriteString("\n\n🎉 Congratulations! You beat the high score!")
	}
	return b.String()
}

func formatSettings(settings *entities.UserSettings) string {
	return fmt.Sprintf(
		"<b>⚙️ Settings</b>\n\n"+
			"🔊 <b>Sound:</b> %s\n"+
			"📳 <b>Haptics:</b> %s\n"+
			"🏆 <b>High score:</b> %d",
		formatBool(settings.SoundEnabled),
		formatBool(settings.HapticsEnabled),
		settings.HighScore,
	)
}

func formatBest(settings *entities.UserSettings) string {
	if settings.HighScore == 0 {
		return "🏆 No high score yet. Send /play to set one!"
	}
	return fmt.Sprintf("🏆 Your best score: <b>%d</b>", settings.HighScore)
}

func formatBool(b bool) string {
	if b {
		return "On ✅"
	}
	return "Off ❌"
}
