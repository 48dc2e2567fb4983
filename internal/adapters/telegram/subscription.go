package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// IsSubscribed reports whether the user is an active member of the
// configured channel. With no channel configured everyone passes. Any
// lookup error (bot lacks rights, private channel, network failure)
// degrades to false: subscription is a soft gate, never a crash.
func (b *Bot) IsSubscribed(_ context.Context, userID int64) bool {
	if !b.cfg.ChannelConfigured() {
		return true
	}

	memberCfg := tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{UserID: userID},
	}
	if b.cfg.ChannelUsername != "" {
		memberCfg.SuperGroupUsername = b.cfg.ChannelUsername
	} else {
		memberCfg.ChatID = b.cfg.ChannelID
	}

	member, err := b.api.GetChatMember(memberCfg)
	if err != nil {
		b.logger.Printf("membership lookup for user %d failed: %v", userID, err)
		return false
	}

	switch member.Status {
	case "creator", "administrator", "member":
		return true
	}
	return false
}
