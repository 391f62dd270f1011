package discord

import (
	"nexuslink/internal/application"

	"github.com/bwmarrin/discordgo"
)

// interactionUser works in both guild channels and DMs.
func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

func colorForStatus(status application.LinkStatus) int {
	switch status {
	case application.StatusLinked:
		return colorSuccess
	case application.StatusError:
		return colorFailure
	default:
		return colorWarning
	}
}

func (b *Bot) respondEmbed(s *discordgo.Session, i *discordgo.Interaction, description string, color int) {
	embed := &discordgo.MessageEmbed{
		Description: description,
		Color:       color,
	}
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func (b *Bot) respondMessage(s *discordgo.Session, i *discordgo.Interaction, msg string, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   flags,
		},
	})
}
