package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tubegrabbot/internal/core/domain"
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		if msg.Command() == "start" {
			b.send(tgbotapi.NewMessage(msg.Chat.ID, b.greeting()))
		}
		return
	}

	if url := supportedURLRe.FindString(msg.Text); url != "" {
		b.handleURL(ctx, msg, url)
		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID,
		"Send me a YouTube or TikTok link.\nExample: https://youtu.be/dQw4w9WgXcQ")
	reply.ReplyToMessageID = msg.MessageID
	b.send(reply)
}

func (b *Bot) greeting() string {
	text := "Hi! I download videos from YouTube and TikTok.\n" +
		"Send a link, then pick a format.\n\n" +
		"I check your channel subscription before downloading."
	if b.cfg.ChannelConfigured() {
		display := b.cfg.ChannelUsername
		if display == "" {
			display = fmt.Sprintf("ID %d", b.cfg.ChannelID)
		}
		text += fmt.Sprintf("\n\nRequired channel: %s", display)
	}
	return text
}

func (b *Bot) handleURL(ctx context.Context, msg *tgbotapi.Message, url string) {
	userID := msg.From.ID
	b.pending.Put(domain.PendingJob{URL: url, UserID: userID})

	if !b.IsSubscribed(ctx, userID) {
		prompt := tgbotapi.NewMessage(msg.Chat.ID,
			"Please subscribe to our channel first, then come back.\n"+
				"Once subscribed, just press the button below ⤵️")
		prompt.ReplyMarkup = b.subscribeKeyboard()
		b.send(prompt)
		return
	}

	menu := tgbotapi.NewMessage(msg.Chat.ID,
		fmt.Sprintf("Got the link:\n%s\nPick a download format:", url))
	menu.ReplyMarkup = formatKeyboard()
	b.send(menu)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	switch {
	case cb.Data == "check:sub":
		b.handleSubCheck(ctx, cb)
	case strings.HasPrefix(cb.Data, "fmt:"):
		b.handleFormatChoice(ctx, cb, strings.TrimPrefix(cb.Data, "fmt:"))
	default:
		b.answer(cb.ID, "", false)
	}
}

func (b *Bot) handleSubCheck(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if !b.IsSubscribed(ctx, cb.From.ID) {
		b.answer(cb.ID, "Still can't see your subscription 🙃", true)
		return
	}
	b.answer(cb.ID, "", false)
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		cb.Message.Chat.ID, cb.Message.MessageID,
		"Subscription confirmed ✅\nPick a format:", formatKeyboard())
	b.send(edit)
}

func (b *Bot) handleFormatChoice(ctx context.Context, cb *tgbotapi.CallbackQuery, choice string) {
	job, err := b.resolveJob(ctx, cb.From.ID)
	if err != nil {
		b.answer(cb.ID, alertText(err), true)
		return
	}

	tier, ok := domain.ParseTier(choice)
	if !ok {
		b.answer(cb.ID, "Unknown format.", true)
		return
	}
	b.answer(cb.ID, "", false)

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	b.editText(chatID, messageID, "⏳ Downloading... (this can take a while)")

	if err := b.sem.Acquire(ctx, 1); err != nil {
		return
	}
	defer b.sem.Release(1)

	outcome, err := b.orch.Fetch(ctx, chatID, job.URL, tier, b)
	if err != nil {
		b.editText(chatID, messageID, userMessage(err))
		return
	}
	b.editText(chatID, messageID,
		fmt.Sprintf("✅ Done! Sent the file above.\nPicked: %s", outcome.Decision.Description))
}

// resolveJob returns the user's pending job, re-checking the subscription:
// the user may have unsubscribed after the menu was shown.
func (b *Bot) resolveJob(ctx context.Context, userID int64) (domain.PendingJob, error) {
	job, ok := b.pending.Get(userID)
	if !ok {
		return domain.PendingJob{}, domain.ErrNoActiveJob
	}
	if !b.IsSubscribed(ctx, userID) {
		return domain.PendingJob{}, domain.ErrNotSubscribed
	}
	return job, nil
}

func alertText(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoActiveJob):
		return "No active link. Send a URL again."
	case errors.Is(err, domain.ErrNotSubscribed):
		return "Subscribe to the channel first 🙏"
	}
	return "Something went wrong, try again."
}

func (b *Bot) answer(callbackID, text string, alert bool) {
	cbCfg := tgbotapi.NewCallback(callbackID, text)
	cbCfg.ShowAlert = alert
	if _, err := b.api.Request(cbCfg); err != nil {
		b.logger.Printf("callback answer failed: %v", err)
	}
}

// userMessage maps an orchestrator error to the text shown in chat. Every
// failure ends the interaction cleanly; nothing propagates further.
func userMessage(err error) string {
	var oversize *domain.OversizeError
	var probeErr *domain.ProbeError
	var dlErr *domain.DownloadError
	var sendErr *domain.SendError

	switch {
	case errors.As(err, &oversize):
		msg := "⚠️ The file is too large to send through the bot.\n" +
			"Try a lower quality or audio only.\n\n"
		if oversize.Title != "" {
			msg += fmt.Sprintf("Title: %s\n", oversize.Title)
		}
		return msg + fmt.Sprintf("Size: %s", domain.HumanSize(oversize.Size))
	case errors.Is(err, domain.ErrNoSuitableFormat):
		return "❌ No downloadable format found for this link."
	case errors.As(err, &probeErr):
		return fmt.Sprintf("❌ Could not read video info: %v", probeErr.Err)
	case errors.As(err, &dlErr):
		return fmt.Sprintf("❌ Download failed: %v", dlErr.Err)
	case errors.As(err, &sendErr):
		return fmt.Sprintf("❌ Could not send the file: %v", sendErr.Err)
	}
	return fmt.Sprintf("❌ Something went wrong: %v", err)
}
