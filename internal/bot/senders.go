package bot

import (
	"log/slog"
	"sync"
	"time"

	"character-search/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		slog.Error("Error sending message", "error", err)
	}
}

func (b *Bot) sendError(chatID int64, reason string) {
	msg := tgbotapi.NewMessage(chatID, reason)
	msg.ReplyMarkup = b.createClearKeyboard()
	if _, err := b.api.Send(msg); err != nil {
		slog.Error("Error sending error message", "error", err)
	}
}

// sendCharacters renders one card per character. An empty list renders
// nothing.
func (b *Bot) sendCharacters(chatID int64, characters []model.Character) {
	start := time.Now()
	defer func() {
		slog.Debug("sendCharacters executed",
			"duration", time.Since(start).Seconds(),
			"characters", len(characters))
	}()

	if len(characters) == 0 {
		return
	}

	b.sendChatAction(chatID, tgbotapi.ChatUploadPhoto)
	images := b.loadImagesConcurrently(characters)

	var photos []tgbotapi.InputMediaPhoto
	for i, char := range characters {
		if images[i] == nil {
			b.sendTextCard(chatID, char)
			continue
		}
		photo := tgbotapi.NewInputMediaPhoto(images[i])
		photo.Caption = formatCharacterCaption(char)
		photos = append(photos, photo)
	}

	for from := 0; from < len(photos); from += mediaGroupLimit {
		to := min(from+mediaGroupLimit, len(photos))
		b.sendPhotos(chatID, photos[from:to])
	}
}

func (b *Bot) loadImagesConcurrently(characters []model.Character) []tgbotapi.RequestFileData {
	type imageResult struct {
		index int
		image tgbotapi.RequestFileData
	}

	results := make(chan imageResult, len(characters))
	var wg sync.WaitGroup

	for i, char := range characters {
		wg.Add(1)
		go func(idx int, url string) {
			defer wg.Done()
			img, err := b.images.Fetch(b.ctx, url)
			if err != nil {
				slog.Warn("Failed to download image", "url", url, "error", err)
			}
			results <- imageResult{idx, img}
		}(i, char.Image)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	images := make([]tgbotapi.RequestFileData, len(characters))
	for res := range results {
		images[res.index] = res.image
	}
	return images
}

// sendPhotos sends a single photo on its own; Telegram only accepts media
// groups of two or more.
func (b *Bot) sendPhotos(chatID int64, photos []tgbotapi.InputMediaPhoto) {
	if len(photos) == 1 {
		b.sendSinglePhoto(chatID, photos[0])
		return
	}

	media := make([]interface{}, len(photos))
	for i, photo := range photos {
		media[i] = photo
	}
	_, err := b.api.SendMediaGroup(tgbotapi.NewMediaGroup(chatID, media))
	if err != nil {
		slog.Error("SendMediaGroup error", "error", err)
		for _, photo := range photos {
			b.sendSinglePhoto(chatID, photo)
		}
	}
}

func (b *Bot) sendSinglePhoto(chatID int64, photo tgbotapi.InputMediaPhoto) {
	msg := tgbotapi.NewPhoto(chatID, photo.Media)
	msg.Caption = photo.Caption
	if _, err := b.api.Send(msg); err != nil {
		slog.Error("Failed to send character photo", "error", err)
	}
}

func (b *Bot) sendTextCard(chatID int64, char model.Character) {
	msg := tgbotapi.NewMessage(chatID, formatCharacterCaption(char))
	if _, err := b.api.Send(msg); err != nil {
		slog.Error("Failed to send character card", "character", char.Name, "error", err)
	}
}

func (b *Bot) sendTempMessage(chatID int64, text string) tgbotapi.Message {
	tempMsg, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		slog.Error("Error sending temp message", "error", err)
	}
	return tempMsg
}

func (b *Bot) cleanupTempMessage(chatID int64, tempMsg tgbotapi.Message) {
	if tempMsg.MessageID == 0 {
		return
	}
	_, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, tempMsg.MessageID))
	if err != nil {
		slog.Error("Error deleting temp message", "error", err)
	}
}

func (b *Bot) sendChatAction(chatID int64, action string) {
	_, err := b.api.Request(tgbotapi.NewChatAction(chatID, action))
	if err != nil {
		slog.Error("Error sending chat action", "action", action, "error", err)
	}
}
