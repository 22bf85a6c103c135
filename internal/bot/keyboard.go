package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const callbackClearSearch = "clear_search"

func (b *Bot) createClearKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Clear search", callbackClearSearch),
		),
	)
}
