package twitch

import (
	"context"
	"fmt"
	"strings"

	"nexuslink/internal/application"
	"nexuslink/internal/models"

	twitchirc "github.com/gempir/go-twitch-irc/v4"
)

func (b *Bot) onMessage(msg twitchirc.PrivateMessage) {
	if !strings.HasPrefix(msg.Message, "!") {
		return
	}

	args := strings.Fields(msg.Message)
	switch args[0] {
	case "!link":
		b.handleLink(msg, args[1:])
	}
}

func (b *Bot) handleLink(msg twitchirc.PrivateMessage, args []string) {
	if len(args) != 2 {
		b.reply(msg, `Wrong arguments. Correct usage: "!link platform platformUsername"`)
		return
	}

	result := b.services.LinkService.LinkAccount(context.Background(), application.LinkRequest{
		ActingPlatform: models.PlatformTwitch,
		ActingIdentity: application.ActingIdentity{
			PlatformID:  msg.User.ID,
			Username:    msg.User.Name,
			DisplayName: msg.User.DisplayName,
		},
		TargetPlatform: strings.ToLower(args[0]),
		TargetUsername: args[1],
	})

	b.reply(msg, result.Message)
}

func (b *Bot) reply(msg twitchirc.PrivateMessage, text string) {
	b.client.Say(msg.Channel, fmt.Sprintf("@%s %s", msg.User.DisplayName, text))
}
