package bot

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"character-search/internal/model"
	"character-search/internal/search"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	telegramCaptionLimit = 1024
	mediaGroupLimit      = 10
	loadingText          = "Loading..."
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	SendMediaGroup(config tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type StateStore interface {
	SaveState(ctx context.Context, chatID int64, state model.SearchState) error
	GetState(ctx context.Context, chatID int64) (*model.SearchState, error)
	DeleteState(ctx context.Context, chatID int64) error
	NextSeq(ctx context.Context, chatID int64) (uint64, error)
	LatestSeq(ctx context.Context, chatID int64) (uint64, error)
}

type Bot struct {
	api      telegramAPI
	username string
	searcher search.Searcher
	state    StateStore
	images   *ImageFetcher

	ctx      context.Context
	cancel   context.CancelFunc
	stopChan chan struct{}  // Channel to signal stopping
	wg       sync.WaitGroup // Update loop and in-flight searches
}

func NewBot(token string, state StateStore, searcher search.Searcher) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	b := newBot(botAPI, state, searcher, NewImageFetcher(&http.Client{Timeout: 10 * time.Second}))
	b.username = botAPI.Self.UserName
	return b, nil
}

func newBot(api telegramAPI, state StateStore, searcher search.Searcher, images *ImageFetcher) *Bot {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bot{
		api:      api,
		searcher: searcher,
		state:    state,
		images:   images,
		ctx:      ctx,
		cancel:   cancel,
		stopChan: make(chan struct{}),
	}
}

// Start begins processing updates in the background. Stop ends it.
func (b *Bot) Start() {
	slog.Info("Authorized on account", slog.String("username", b.username))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.wg.Add(1)
	go b.run(updates)
}

func (b *Bot) run(updates tgbotapi.UpdatesChannel) {
	defer b.wg.Done()

	for {
		select {
		case <-b.stopChan:
			slog.Info("Stopping bot update processing")
			return
		case update, ok := <-updates:
			if !ok {
				slog.Info("Updates channel closed")
				return
			}
			b.dispatch(update)
		}
	}
}

func (b *Bot) dispatch(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	if !update.Message.IsCommand() {
		b.handleMessage(update.Message)
		return
	}

	switch update.Message.Command() {
	case "start":
		b.handleStartCommand(update.Message)
	case "help":
		b.handleHelpCommand(update.Message)
	case "clear":
		b.clearSearch(update.Message.Chat.ID)
	}
}

func (b *Bot) Stop() {
	slog.Info("Initiating bot shutdown...")
	close(b.stopChan) // Signal to stop processing updates
	b.cancel()
	b.wg.Wait()

	if b.api != nil {
		b.api.StopReceivingUpdates()
	}

	slog.Info("Bot shutdown complete")
}
