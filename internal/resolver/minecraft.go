package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"nexuslink/internal/models"
)

const (
	playerDBURL   = "https://playerdb.co/api/player/minecraft"
	gamertagURL   = "https://uuid.kejona.dev/api/v1/gamertag"
	geyserSkinURL = "https://api.geysermc.org/v2/skin"

	crafatarSkinURL = "https://crafatar.com/skins"
	textureBaseURL  = "https://textures.minecraft.net/texture"

	userAgent = "NexusLink/1.0 DiscordBot/TwitchBot"

	// BedrockPrefix marks a Bedrock gamertag in user input.
	BedrockPrefix = "."
)

var bedrockNamePattern = regexp.MustCompile(`^\.+[^\s]+$`)

// MinecraftVariant classifies a raw username by its naming convention, for
// display only: leading dots denote a Bedrock gamertag.
func MinecraftVariant(username string) string {
	if bedrockNamePattern.MatchString(username) {
		return "Minecraft Bedrock"
	}
	return "Minecraft Java"
}

// MinecraftResolver resolves Java usernames through playerdb.co and Bedrock
// gamertags through the kejona/Geyser APIs.
type MinecraftResolver struct {
	client *http.Client

	javaURL string
	xboxURL string
	skinURL string
}

func NewMinecraftResolver() *MinecraftResolver {
	return &MinecraftResolver{
		client:  &http.Client{Timeout: 10 * time.Second},
		javaURL: playerDBURL,
		xboxURL: gamertagURL,
		skinURL: geyserSkinURL,
	}
}

func (r *MinecraftResolver) Resolve(ctx context.Context, username string) (*models.ExternalIdentity, error) {
	// A Java miss or failure still leaves the Bedrock fallback, as does an
	// unprefixed gamertag.
	if !strings.HasPrefix(username, BedrockPrefix) {
		if id, err := r.resolveJava(ctx, username); err == nil && id != nil {
			return id, nil
		}
	}
	return r.resolveBedrock(ctx, username)
}

type playerDBResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Player struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"player"`
	} `json:"data"`
}

func (r *MinecraftResolver) resolveJava(ctx context.Context, username string) (*models.ExternalIdentity, error) {
	var resp playerDBResponse
	if err := r.getJSON(ctx, r.javaURL+"/"+username, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, nil
	}

	player := resp.Data.Player
	return &models.ExternalIdentity{
		PlatformID:  player.ID,
		Username:    player.Username,
		DisplayName: player.Username,
		AvatarURL:   crafatarSkinURL + "/" + player.ID,
	}, nil
}

type gamertagResponse struct {
	Gamertag     string `json:"gamertag"`
	XUID         int64  `json:"xuid"`
	FloodgateUID string `json:"floodgateuid"`
}

type geyserSkinResponse struct {
	TextureID string `json:"texture_id"`
}

func (r *MinecraftResolver) resolveBedrock(ctx context.Context, username string) (*models.ExternalIdentity, error) {
	gamertag := strings.TrimLeft(username, BedrockPrefix)

	var resp gamertagResponse
	if err := r.getJSON(ctx, r.xboxURL+"/"+gamertag, &resp); err != nil {
		return nil, err
	}
	if resp.FloodgateUID == "" {
		return nil, nil
	}

	identity := &models.ExternalIdentity{
		PlatformID:  resp.FloodgateUID,
		Username:    BedrockPrefix + resp.Gamertag,
		DisplayName: resp.Gamertag,
	}

	// Skin lookup is best-effort decoration.
	var skin geyserSkinResponse
	if err := r.getJSON(ctx, fmt.Sprintf("%s/%d", r.skinURL, resp.XUID), &skin); err == nil && skin.TextureID != "" {
		identity.AvatarURL = textureBaseURL + "/" + skin.TextureID
	}

	return identity, nil
}

func (r *MinecraftResolver) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
