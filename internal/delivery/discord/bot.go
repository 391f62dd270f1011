package discord

import (
	"context"
	"strings"

	"nexuslink/internal/application"
	"nexuslink/pkg/config"

	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	session  *discordgo.Session
	services *application.Service
	logger   application.Logger

	adminIDs map[string]struct{}
	guildID  string
}

func NewBot(cfg *config.Config, services *application.Service, logger application.Logger) *Bot {
	s, _ := discordgo.New("Bot " + cfg.DiscordToken)

	admins := make(map[string]struct{})
	for _, id := range cfg.AdminUserIDs {
		cleanID := strings.TrimSpace(id)
		if cleanID != "" {
			admins[cleanID] = struct{}{}
		}
	}

	return &Bot{
		session:  s,
		services: services,
		logger:   logger,
		adminIDs: admins,
		guildID:  cfg.DiscordGuildID,
	}
}

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "link",
		Description: "Link your accounts",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "twitch",
				Description: "Link your Twitch account",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "username",
						Description: "Your Twitch username",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "game",
				Description: "Link your game account",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "platform",
						Description: "The platform/game you play on",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Minecraft", Value: "minecraft"},
							{Name: "Steam64 ID", Value: "steam64"},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "username",
						Description: "Your username on that platform",
						Required:    true,
					},
				},
			},
		},
	},
	{Name: "export", Description: "Export linked accounts to Excel (admins only)"},
}

func (b *Bot) Init() error {
	b.session.AddHandler(b.onInteraction)
	return nil
}

func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return err
	}

	b.logger.Info("Discord Bot Started. Registering slash commands...")

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildID, commands)
	if err != nil {
		b.logger.Error("Failed to register commands: %v", err)
	} else {
		b.logger.Info("Slash commands registered successfully")
	}

	return nil
}

func (b *Bot) Stop() {
	b.session.Close()
}

func (b *Bot) isAdmin(userID string) bool {
	_, ok := b.adminIDs[userID]
	return ok
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "link":
		b.handleLink(s, i.Interaction)
	case "export":
		if !b.isAdmin(interactionUser(i.Interaction).ID) {
			b.respondMessage(s, i.Interaction, "You do not have permission to use this command.", true)
			return
		}
		b.handleExport(s, i.Interaction)
	}
}
