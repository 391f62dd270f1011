package models

import "time"

// Platform names understood by the reconciliation engine. The set is open:
// any other name is treated as a generic, unverifiable platform.
const (
	PlatformDiscord   = "discord"
	PlatformTwitch    = "twitch"
	PlatformMinecraft = "minecraft"
	PlatformSteam64   = "steam64"
)

// ExternalIdentity is a resolver's view of an account on a foreign platform.
type ExternalIdentity struct {
	PlatformID  string `json:"platform_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// PendingClaim records that someone on another platform claims this platform
// identity belongs to them, awaiting confirmation from the platform's own
// surface.
type PendingClaim struct {
	ClaimedName    string `json:"claimed_name"`
	SourceUsername string `json:"source_username"`
}

// PlatformLink is one platform entry of a UserRecord. A confirmed link has
// Pending == nil; a pending entry carries only the claim and never owns a
// PlatformID.
type PlatformLink struct {
	PlatformID  string        `json:"platform_id,omitempty"`
	Username    string        `json:"username,omitempty"`
	DisplayName string        `json:"display_name,omitempty"`
	AvatarURL   string        `json:"avatar_url,omitempty"`
	Pending     *PendingClaim `json:"pending,omitempty"`
}

func (l PlatformLink) IsPending() bool {
	return l.Pending != nil
}

// LinkFromIdentity converts a resolved identity into a confirmed link entry.
func LinkFromIdentity(id ExternalIdentity) PlatformLink {
	return PlatformLink{
		PlatformID:  id.PlatformID,
		Username:    id.Username,
		DisplayName: id.DisplayName,
		AvatarURL:   id.AvatarURL,
	}
}

// UserRecord is the merged cross-platform identity. Links maps a platform
// name to the identity owned on that platform. Across all records, confirmed
// PlatformID values are disjoint per platform.
type UserRecord struct {
	ID        string                  `json:"id"`
	Links     map[string]PlatformLink `json:"links"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// Clone returns a deep copy so callers can mutate link maps freely.
func (u *UserRecord) Clone() *UserRecord {
	if u == nil {
		return nil
	}
	out := *u
	out.Links = make(map[string]PlatformLink, len(u.Links))
	for platform, link := range u.Links {
		if link.Pending != nil {
			claim := *link.Pending
			link.Pending = &claim
		}
		out.Links[platform] = link
	}
	return &out
}
