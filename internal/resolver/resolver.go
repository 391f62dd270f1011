package resolver

import (
	"context"

	"nexuslink/internal/models"
)

// Resolver verifies that a username exists on a foreign platform and returns
// its canonical identity. A nil identity with a nil error means not-found;
// the engine treats a non-nil error the same way after logging it.
type Resolver interface {
	Resolve(ctx context.Context, username string) (*models.ExternalIdentity, error)
}

// Registry maps a platform name to its resolver. Platforms without a
// resolver are linked as generic, unverifiable identifiers.
type Registry map[string]Resolver

func (r Registry) For(platform string) (Resolver, bool) {
	res, ok := r[platform]
	return res, ok
}
