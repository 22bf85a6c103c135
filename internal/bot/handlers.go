package bot

import (
	"log/slog"

	"character-search/internal/api"
	"character-search/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = "Send me a character name and I will look it up.\n\n" +
	"Available commands:\n" +
	"/start - start over\n" +
	"/help - show this help\n" +
	"/clear - forget the current search"

func (b *Bot) handleStartCommand(msg *tgbotapi.Message) {
	b.sendText(msg.Chat.ID, "Hi! I search characters by name.\n\n"+helpText)
}

func (b *Bot) handleHelpCommand(msg *tgbotapi.Message) {
	b.sendText(msg.Chat.ID, helpText)
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	// Stickers, photos and the like carry no text to search for.
	if msg.Text == "" {
		b.sendText(msg.Chat.ID, helpText)
		return
	}

	// Tags are issued on the update loop so they follow message order; the
	// search itself runs concurrently.
	chatID, query := msg.Chat.ID, msg.Text
	seq, err := b.state.NextSeq(b.ctx, chatID)
	if err != nil {
		slog.Error("Error issuing search sequence", "error", err)
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.processSearchQuery(chatID, query, seq)
	}()
}

// processSearchQuery runs the search tagged seq and renders it only if no
// later search was issued for the chat in the meantime.
func (b *Bot) processSearchQuery(chatID int64, query string, seq uint64) {
	ctx := b.ctx

	if err := b.state.SaveState(ctx, chatID, model.SearchState{Query: query, Seq: seq}); err != nil {
		slog.Error("Error saving state to Redis", "error", err)
		return
	}

	tempMsg := b.sendTempMessage(chatID, loadingText)
	resp := b.searcher.Search(ctx, query)
	b.cleanupTempMessage(chatID, tempMsg)

	latest, err := b.state.LatestSeq(ctx, chatID)
	if err != nil {
		slog.Error("Error getting search sequence from Redis", "error", err)
		return
	}
	if latest != seq {
		slog.Debug("Dropped stale search response", "chat", chatID, "seq", seq)
		return
	}

	switch r := resp.(type) {
	case api.Success:
		b.sendCharacters(chatID, r.Characters)
	case api.Failure:
		b.sendError(chatID, r.Reason)
	}
}
