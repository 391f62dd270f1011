package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"nexuslink/internal/models"
)

const (
	twitchTokenURL = "https://id.twitch.tv/oauth2/token"
	twitchUsersURL = "https://api.twitch.tv/helix/users"
)

// TwitchResolver looks up users through the Helix API using an
// app-access token obtained with the client-credentials grant.
type TwitchResolver struct {
	clientID     string
	clientSecret string
	client       *http.Client

	tokenURL string
	usersURL string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewTwitchResolver(clientID, clientSecret string) *TwitchResolver {
	return &TwitchResolver{
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{Timeout: 10 * time.Second},
		tokenURL:     twitchTokenURL,
		usersURL:     twitchUsersURL,
	}
}

type helixUser struct {
	ID              string `json:"id"`
	Login           string `json:"login"`
	DisplayName     string `json:"display_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

type helixUsersResponse struct {
	Data []helixUser `json:"data"`
}

func (r *TwitchResolver) Resolve(ctx context.Context, username string) (*models.ExternalIdentity, error) {
	token, err := r.appToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain twitch token: %w", err)
	}

	reqURL := r.usersURL + "?login=" + url.QueryEscape(strings.ToLower(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Client-Id", r.clientID)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from helix users", resp.StatusCode)
	}

	var users helixUsersResponse
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, err
	}
	if len(users.Data) == 0 {
		return nil, nil
	}

	user := users.Data[0]
	return &models.ExternalIdentity{
		PlatformID:  user.ID,
		Username:    user.Login,
		DisplayName: user.DisplayName,
		AvatarURL:   user.ProfileImageURL,
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (r *TwitchResolver) appToken(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.accessToken != "" && time.Now().Before(r.tokenExpiry) {
		return r.accessToken, nil
	}

	form := url.Values{
		"client_id":     {r.clientID},
		"client_secret": {r.clientSecret},
		"grant_type":    {"client_credentials"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from token endpoint", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty token")
	}

	r.accessToken = token.AccessToken
	// Refresh a minute early so in-flight requests never carry a token
	// that expires mid-call.
	r.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)
	return r.accessToken, nil
}
