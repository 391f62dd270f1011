package application

import (
	"context"
	"errors"
	"fmt"

	"nexuslink/internal/models"
	"nexuslink/internal/repository"
	"nexuslink/internal/resolver"
)

// LinkStatus tags the outcome of a link request.
type LinkStatus int

const (
	StatusLinked LinkStatus = iota
	StatusInvalidUsername
	StatusAlreadyLinked
	StatusNoPendingConfirmation
	StatusError
)

// ActingIdentity is the requester's identity on the platform the request
// arrived on.
type ActingIdentity struct {
	PlatformID  string
	Username    string
	DisplayName string
}

type LinkRequest struct {
	ActingPlatform string
	ActingIdentity ActingIdentity
	TargetPlatform string
	TargetUsername string
}

// LinkResult carries a tagged status plus a human-readable message. Err is
// set only for StatusError and never shown to the user.
type LinkResult struct {
	Status  LinkStatus
	Message string
	Err     error
}

const (
	msgGenericError = "An error occurred while linking your account"
	msgNoPending    = "There is no link pending for this Twitch account, " +
		"please link your Discord account in Twitch chat first: !link discord <your discord name>"
	msgTwitchLinked = "Your Twitch account has been linked"
)

type LinkServiceImpl struct {
	users     repository.User
	resolvers resolver.Registry
	logger    Logger
}

func NewLinkServiceImpl(users repository.User, resolvers resolver.Registry, logger Logger) *LinkServiceImpl {
	return &LinkServiceImpl{
		users:     users,
		resolvers: resolvers,
		logger:    logger,
	}
}

// LinkAccount executes one link request: locate or create the acting user's
// record, then dispatch on the target platform. Raw store errors never
// escape; they come back as StatusError with a generic message.
func (s *LinkServiceImpl) LinkAccount(ctx context.Context, req LinkRequest) LinkResult {
	acting, err := s.findOrCreateActing(req)
	if err != nil {
		return s.failure("failed to locate acting record", err)
	}

	switch {
	case req.TargetPlatform == models.PlatformDiscord && req.ActingPlatform != models.PlatformDiscord:
		return s.storePendingClaim(acting, req)
	case req.TargetPlatform == models.PlatformTwitch && req.ActingPlatform == models.PlatformDiscord:
		return s.confirmTwitchLink(ctx, acting, req)
	}

	if res, ok := s.resolvers.For(req.TargetPlatform); ok {
		return s.linkResolvedAccount(ctx, acting, req, res)
	}
	return s.linkGenericAccount(acting, req)
}

func (s *LinkServiceImpl) findOrCreateActing(req LinkRequest) (*models.UserRecord, error) {
	acting, err := s.users.FindByPlatformID(req.ActingPlatform, req.ActingIdentity.PlatformID)
	if err == nil {
		return acting, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return s.users.Create(map[string]models.PlatformLink{
		req.ActingPlatform: {
			PlatformID:  req.ActingIdentity.PlatformID,
			Username:    req.ActingIdentity.Username,
			DisplayName: req.ActingIdentity.DisplayName,
		},
	})
}

// linkResolvedAccount handles platforms with a resolver: verify the
// username, enforce identity uniqueness across records, then attach.
func (s *LinkServiceImpl) linkResolvedAccount(ctx context.Context, acting *models.UserRecord, req LinkRequest, res resolver.Resolver) LinkResult {
	identity := s.resolve(ctx, res, req.TargetPlatform, req.TargetUsername)
	if identity == nil {
		return LinkResult{
			Status:  StatusInvalidUsername,
			Message: fmt.Sprintf("Invalid %s username", platformLabel(req.TargetPlatform)),
		}
	}

	owner, err := s.users.FindByPlatformID(req.TargetPlatform, identity.PlatformID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return s.failure("failed to check identity ownership", err)
	}
	if owner != nil && owner.ID != acting.ID {
		return LinkResult{
			Status:  StatusAlreadyLinked,
			Message: fmt.Sprintf("This %s account has already been linked", platformLabel(req.TargetPlatform)),
		}
	}

	links := map[string]models.PlatformLink{req.TargetPlatform: models.LinkFromIdentity(*identity)}
	if _, err := s.users.Update(acting.ID, links); err != nil {
		return s.failure("failed to attach resolved identity", err)
	}

	label := platformLabel(req.TargetPlatform)
	if req.TargetPlatform == models.PlatformMinecraft {
		label = resolver.MinecraftVariant(req.TargetUsername)
	}
	return LinkResult{
		Status:  StatusLinked,
		Message: fmt.Sprintf("Your %s account has been linked", label),
	}
}

// linkGenericAccount attaches an unverifiable identifier as-is. No
// uniqueness check: such identifiers cannot be resolved independently, a
// documented limitation of this platform class.
func (s *LinkServiceImpl) linkGenericAccount(acting *models.UserRecord, req LinkRequest) LinkResult {
	links := map[string]models.PlatformLink{
		req.TargetPlatform: {
			PlatformID: req.TargetUsername,
			Username:   req.TargetUsername,
		},
	}
	if _, err := s.users.Update(acting.ID, links); err != nil {
		return s.failure("failed to attach generic identity", err)
	}
	return LinkResult{
		Status:  StatusLinked,
		Message: fmt.Sprintf("Your %s account has been linked", req.TargetPlatform),
	}
}

// storePendingClaim records, on the claimant's own record, that their
// Discord identity is the given name. Only a request arriving from Discord
// under that name can complete the link.
func (s *LinkServiceImpl) storePendingClaim(acting *models.UserRecord, req LinkRequest) LinkResult {
	links := map[string]models.PlatformLink{
		models.PlatformDiscord: {
			Pending: &models.PendingClaim{
				ClaimedName:    req.TargetUsername,
				SourceUsername: req.ActingIdentity.Username,
			},
		},
	}
	if _, err := s.users.Update(acting.ID, links); err != nil {
		return s.failure("failed to store pending claim", err)
	}

	s.logger.Info("stored pending discord claim: record=%s claimed=%s", acting.ID, req.TargetUsername)
	return LinkResult{
		Status: StatusLinked,
		Message: fmt.Sprintf("Pending confirmation of your Discord account, "+
			"please confirm the link from Discord: /link twitch %s", req.ActingIdentity.Username),
	}
}

// confirmTwitchLink handles a request arriving from Discord to link a Twitch
// account: the only branch with cross-record merge semantics.
func (s *LinkServiceImpl) confirmTwitchLink(ctx context.Context, acting *models.UserRecord, req LinkRequest) LinkResult {
	res, ok := s.resolvers.For(models.PlatformTwitch)
	if !ok {
		return s.failure("twitch resolver not configured", errors.New("missing resolver"))
	}

	identity := s.resolve(ctx, res, models.PlatformTwitch, req.TargetUsername)
	if identity == nil {
		return LinkResult{Status: StatusInvalidUsername, Message: "Invalid Twitch username"}
	}

	claimant, err := s.users.FindByPlatformID(models.PlatformTwitch, identity.PlatformID)
	if errors.Is(err, repository.ErrNotFound) {
		return LinkResult{Status: StatusNoPendingConfirmation, Message: msgNoPending}
	}
	if err != nil {
		return s.failure("failed to locate claimant record", err)
	}

	// Re-linking an identity the acting record already owns succeeds again.
	if claimant.ID == acting.ID {
		links := map[string]models.PlatformLink{models.PlatformTwitch: models.LinkFromIdentity(*identity)}
		if _, err := s.users.Update(acting.ID, links); err != nil {
			return s.failure("failed to refresh twitch link", err)
		}
		return LinkResult{Status: StatusLinked, Message: msgTwitchLinked}
	}

	claim, ok := claimant.Links[models.PlatformDiscord]
	if !ok || claim.Pending == nil || claim.Pending.ClaimedName != req.ActingIdentity.DisplayName {
		return LinkResult{Status: StatusNoPendingConfirmation, Message: msgNoPending}
	}

	return s.mergeInto(acting, claimant, *identity, req.ActingIdentity)
}

// mergeInto folds the claimant record into the confirming one. The claimant
// is deleted first; on a conflicting platform entry the confirming record's
// value wins, since it holds the verified Discord identity. Pending entries
// are consumed, never copied.
func (s *LinkServiceImpl) mergeInto(confirming, claimant *models.UserRecord, twitch models.ExternalIdentity, acting ActingIdentity) LinkResult {
	deleted, err := s.users.Delete(claimant.ID)
	if errors.Is(err, repository.ErrNotFound) {
		// A concurrent confirmation already consumed it; merge from the
		// state read above.
		deleted = claimant
	} else if err != nil {
		return s.failure("failed to delete claimant record", err)
	}

	merged := make(map[string]models.PlatformLink)
	for platform, link := range deleted.Links {
		if link.IsPending() {
			continue
		}
		if _, exists := confirming.Links[platform]; exists {
			continue
		}
		merged[platform] = link
	}
	merged[models.PlatformTwitch] = models.LinkFromIdentity(twitch)
	merged[models.PlatformDiscord] = models.PlatformLink{
		PlatformID:  acting.PlatformID,
		Username:    acting.Username,
		DisplayName: acting.DisplayName,
	}

	if _, err := s.users.Update(confirming.ID, merged); err != nil {
		// The claimant is already gone: its data cannot be restored
		// automatically. Operators reconcile from these identifiers.
		s.logger.Error("merge update failed after claimant deletion: confirming=%s claimant=%s: %v",
			confirming.ID, claimant.ID, err)
		return LinkResult{Status: StatusError, Message: msgGenericError, Err: err}
	}

	s.logger.Info("merged user records: confirming=%s claimant=%s", confirming.ID, claimant.ID)
	return LinkResult{Status: StatusLinked, Message: msgTwitchLinked}
}

// resolve normalizes resolver behavior: a transport failure is logged and
// reported like a miss.
func (s *LinkServiceImpl) resolve(ctx context.Context, res resolver.Resolver, platform, username string) *models.ExternalIdentity {
	identity, err := res.Resolve(ctx, username)
	if err != nil {
		s.logger.Warn("%s resolver failed for %q: %v", platform, username, err)
		return nil
	}
	return identity
}

func (s *LinkServiceImpl) failure(action string, err error) LinkResult {
	s.logger.Error("%s: %v", action, err)
	return LinkResult{Status: StatusError, Message: msgGenericError, Err: err}
}

func platformLabel(platform string) string {
	switch platform {
	case models.PlatformMinecraft:
		return "Minecraft"
	case models.PlatformTwitch:
		return "Twitch"
	case models.PlatformDiscord:
		return "Discord"
	default:
		return platform
	}
}
