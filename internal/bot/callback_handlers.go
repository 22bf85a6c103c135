package bot

import (
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		slog.Warn("Received callback without message", "data", query.Data)
		return
	}

	callbackConfig := tgbotapi.CallbackConfig{
		CallbackQueryID: query.ID,
	}
	if _, err := b.api.Request(callbackConfig); err != nil {
		slog.Error("Error sending callback response", "error", err)
	}

	switch query.Data {
	case callbackClearSearch:
		b.clearSearch(query.Message.Chat.ID)
	default:
		slog.Warn("Unknown callback", "data", query.Data)
	}
}

// clearSearch forgets the chat state and supersedes any search in flight.
func (b *Bot) clearSearch(chatID int64) {
	if _, err := b.state.NextSeq(b.ctx, chatID); err != nil {
		slog.Error("Error issuing search sequence", "error", err)
	}
	if err := b.state.DeleteState(b.ctx, chatID); err != nil {
		slog.Error("Error deleting state from Redis", "error", err)
	}
	b.sendText(chatID, "Search cleared")
}
