package twitch

import (
	"context"
	"strings"

	"nexuslink/internal/application"
	"nexuslink/pkg/config"

	twitchirc "github.com/gempir/go-twitch-irc/v4"
)

type Bot struct {
	client   *twitchirc.Client
	services *application.Service
	logger   application.Logger
	channels []string
}

func NewBot(cfg *config.Config, services *application.Service, logger application.Logger) *Bot {
	client := twitchirc.NewClient(cfg.TwitchBotUsername, cfg.TwitchBotToken)

	var channels []string
	for _, ch := range cfg.TwitchChannels {
		clean := strings.TrimSpace(strings.TrimPrefix(ch, "#"))
		if clean != "" {
			channels = append(channels, clean)
		}
	}

	return &Bot{
		client:   client,
		services: services,
		logger:   logger,
		channels: channels,
	}
}

// Run connects to Twitch chat and blocks until Stop or a connection error.
func (b *Bot) Run(ctx context.Context) error {
	b.client.OnPrivateMessage(b.onMessage)
	b.client.OnConnect(func() {
		b.logger.Info("Twitch bot connected to %d channel(s)", len(b.channels))
	})
	b.client.Join(b.channels...)

	return b.client.Connect()
}

func (b *Bot) Stop() {
	if err := b.client.Disconnect(); err != nil {
		b.logger.Warn("twitch disconnect: %v", err)
	}
}
