package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the bot's environment-backed settings.
type Config struct {
	BotToken        string // required
	ChannelUsername string // optional, e.g. @my_channel
	ChannelID       int64  // optional numeric channel id
	CookiesFile     string // optional cookie file for the extraction engine
	YtDlpPath       string // optional binary override
	MaxConcurrent   int64  // concurrent downloads across all users
}

// Load reads configuration from the environment. A missing bot token is the
// only fatal condition in the whole program.
func Load() (*Config, error) {
	cfg := &Config{
		BotToken:        os.Getenv("BOT_TOKEN"),
		ChannelUsername: os.Getenv("CHANNEL_USERNAME"),
		CookiesFile:     os.Getenv("YTDLP_COOKIES"),
		YtDlpPath:       os.Getenv("YTDLP_PATH"),
		MaxConcurrent:   3,
	}
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable not set")
	}
	if v := os.Getenv("CHANNEL_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid CHANNEL_ID %q: %w", v, err)
		}
		cfg.ChannelID = id
	}
	if v := os.Getenv("MAX_CONCURRENT_DOWNLOADS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxConcurrent = n
		}
	}
	return cfg, nil
}

// ChannelConfigured reports whether a subscription channel is set.
func (c *Config) ChannelConfigured() bool {
	return c.ChannelUsername != "" || c.ChannelID != 0
}
