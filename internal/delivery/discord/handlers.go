package discord

import (
	"bytes"
	"context"

	"nexuslink/internal/application"
	"nexuslink/internal/models"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleLink(s *discordgo.Session, i *discordgo.Interaction) {
	sub := i.ApplicationCommandData().Options[0]
	user := interactionUser(i)

	var targetPlatform, targetUsername string
	switch sub.Name {
	case "twitch":
		targetPlatform = models.PlatformTwitch
		targetUsername = sub.Options[0].StringValue()
	case "game":
		for _, opt := range sub.Options {
			switch opt.Name {
			case "platform":
				targetPlatform = opt.StringValue()
			case "username":
				targetUsername = opt.StringValue()
			}
		}
	default:
		return
	}

	result := b.services.LinkService.LinkAccount(context.Background(), application.LinkRequest{
		ActingPlatform: models.PlatformDiscord,
		ActingIdentity: application.ActingIdentity{
			PlatformID:  user.ID,
			Username:    user.Username,
			DisplayName: user.Username,
		},
		TargetPlatform: targetPlatform,
		TargetUsername: targetUsername,
	})

	b.respondEmbed(s, i, result.Message, colorForStatus(result.Status))
}

func (b *Bot) handleExport(s *discordgo.Session, i *discordgo.Interaction) {
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	data, err := b.services.ExportService.LinkedAccountsReport()
	if err != nil {
		b.logger.Error("Export error: %v", err)
		s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
			Content: &[]string{"An error occurred while exporting linked accounts"}[0],
		})
		return
	}

	s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content: &[]string{"Your report is ready!"}[0],
		Files: []*discordgo.File{
			{Name: "linked_accounts.xlsx", Reader: bytes.NewReader(data)},
		},
	})
}
