package config

import (
	"nexuslink/internal/repository"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Repo           repository.Config `envPrefix:"REPO_"`
	DiscordToken   string            `env:"DISCORD_TOKEN" envDefault:""`
	DiscordGuildID string            `env:"DISCORD_GUILD_ID" envDefault:""`
	LogLevel       string            `env:"LOGGER_LEVEL" envDefault:"debug"`

	AdminUserIDs []string `env:"ADMIN_USER_IDS" envSeparator:"," envDefault:""`

	TwitchClientID     string   `env:"TWITCH_CLIENT_ID" envDefault:""`
	TwitchClientSecret string   `env:"TWITCH_CLIENT_SECRET" envDefault:""`
	TwitchBotUsername  string   `env:"TWITCH_BOT_USERNAME" envDefault:""`
	TwitchBotToken     string   `env:"TWITCH_BOT_TOKEN" envDefault:""`
	TwitchChannels     []string `env:"TWITCH_CHANNELS" envSeparator:"," envDefault:""`
}

func ReadEnvConfig(cfg *Config) error {
	return env.Parse(cfg)
}
