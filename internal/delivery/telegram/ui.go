package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// buildHomeKeyboard builds the main menu keyboard.
func buildHomeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Play", buildMenuCallback(menuPlay)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", buildMenuCallback(menuSettings)),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Best score", buildMenuCallback(menuBest)),
		),
	)
}

// buildInstructionsKeyboard is shown under the rules before a round starts.
func buildInstructionsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚀 Start", buildGameCallback(gameStart)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Home", buildMenuCallback(menuHome)),
		),
	)
}

// buildAnswerKeyboard builds one button per option plus a stop button.
func buildAnswerKeyboard(round, number int, options []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options)+1)
	for i, option := range options {
		data := buildAnswerCallback(answerRef{Round: round, Number: number, Option: i})
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(option, data)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⏹ Stop", buildGameCallback(gameStop)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResultKeyboard builds keyboard for the round summary.
func buildResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", buildGameCallback(gameStart)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Home", buildMenuCallback(menuHome)),
		),
	)
}

// buildSettingsKeyboard builds the settings keyboard.
func buildSettingsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔊 Sound", buildSettingsCallback(settingsSound)),
			tgbotapi.NewInlineKeyboardButtonData("📳 Haptics", buildSettingsCallback(settingsHaptics)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Clear high score", buildSettingsCallback(settingsClear)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Home", buildMenuCallback(menuHome)),
		),
	)
}

// buildClearConfirmKeyboard asks to confirm clearing the high score.
func buildClearConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, clear", buildSettingsCallback(settingsClearConfirm)),
			tgbotapi.NewInlineKeyboardButtonData("« Cancel", buildSettingsCallback(settingsClearCancel)),
		),
	)
}

// buildBackHomeKeyboard has a single button back to the main menu.
func buildBackHomeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Home", buildMenuCallback(menuHome)),
		),
	)
}
