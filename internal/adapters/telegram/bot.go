// Package telegram is the messaging transport: it routes inbound messages
// and button presses, gates users behind the channel subscription, and
// relays downloaded files back into chat.
package telegram

import (
	"context"
	"fmt"
	"log"
	"regexp"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/semaphore"

	"tubegrabbot/internal/config"
	"tubegrabbot/internal/service"
)

// supportedURLRe recognizes YouTube and TikTok links anywhere in a message.
var supportedURLRe = regexp.MustCompile(`(?i)(https?://(www\.)?(youtube\.com|youtu\.be|tiktok\.com)/[^\s]+)`)

// Bot wires the Telegram API to the fetch orchestrator.
type Bot struct {
	api     *tgbotapi.BotAPI
	cfg     *config.Config
	orch    *service.Orchestrator
	pending *service.PendingStore
	sem     *semaphore.Weighted
	logger  *log.Logger
}

// New authorizes against the Bot API and builds the Bot.
func New(cfg *config.Config, orch *service.Orchestrator, logger *log.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API client: %w", err)
	}
	logger.Printf("authorized as @%s", api.Self.UserName)
	return &Bot{
		api:     api,
		cfg:     cfg,
		orch:    orch,
		pending: service.NewPendingStore(),
		sem:     semaphore.NewWeighted(cfg.MaxConcurrent),
		logger:  logger,
	}, nil
}

// Run polls for updates until ctx is cancelled. Each update is handled in
// its own goroutine; downloads are additionally bounded by the semaphore.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Printf("panic while handling update: %v", r)
		}
	}()

	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Printf("send failed: %v", err)
	}
}

func (b *Bot) editText(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	b.send(edit)
}
