package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tubegrabbot/internal/core/ports"
)

// Bot implements ports.MediaSink: downloaded files are relayed straight
// from the scratch directory.

// SendVideo uploads the file as a streamable video.
func (b *Bot) SendVideo(chatID int64, path string, meta ports.SendMeta) error {
	video := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(path))
	video.Caption = b.caption(meta)
	video.SupportsStreaming = true
	if meta.ThumbPath != "" {
		video.Thumb = tgbotapi.FilePath(meta.ThumbPath)
	}
	if _, err := b.api.Send(video); err != nil {
		return fmt.Errorf("video upload failed: %w", err)
	}
	return nil
}

// SendAudio uploads the file as audio with title/performer metadata.
func (b *Bot) SendAudio(chatID int64, path string, meta ports.SendMeta) error {
	audio := tgbotapi.NewAudio(chatID, tgbotapi.FilePath(path))
	audio.Caption = b.caption(meta)
	audio.Title = meta.Title
	audio.Performer = meta.Performer
	if meta.ThumbPath != "" {
		audio.Thumb = tgbotapi.FilePath(meta.ThumbPath)
	}
	if _, err := b.api.Send(audio); err != nil {
		return fmt.Errorf("audio upload failed: %w", err)
	}
	return nil
}

func (b *Bot) caption(meta ports.SendMeta) string {
	if meta.Caption != "" {
		return meta.Caption
	}
	return "Downloaded via @" + b.api.Self.UserName
}
