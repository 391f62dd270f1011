package resolver

import (
	"context"
	"testing"

	"nexuslink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingResolver struct {
	calls    int
	identity *models.ExternalIdentity
}

func (r *countingResolver) Resolve(context.Context, string) (*models.ExternalIdentity, error) {
	r.calls++
	return r.identity, nil
}

func TestIdentityCacheStoresByNormalizedKey(t *testing.T) {
	cache := NewIdentityCache()
	assert.Equal(t, 0, cache.Size())

	cache.Set("Steve", models.ExternalIdentity{PlatformID: "uuid-steve", Username: "Steve"})
	cache.Set("  STEVE ", models.ExternalIdentity{PlatformID: "uuid-steve", Username: "Steve"})
	assert.Equal(t, 1, cache.Size())

	id, found := cache.Get("steve")
	require.True(t, found)
	assert.Equal(t, "uuid-steve", id.PlatformID)

	_, found = cache.Get("alex")
	assert.False(t, found)
}

func TestCachedResolverHitsInnerOnce(t *testing.T) {
	inner := &countingResolver{identity: &models.ExternalIdentity{PlatformID: "uuid-steve", Username: "Steve"}}
	cached := NewCached(inner)

	for i := 0; i < 3; i++ {
		id, err := cached.Resolve(context.Background(), "Steve")
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, "uuid-steve", id.PlatformID)
	}

	assert.Equal(t, 1, inner.calls)
}

func TestCachedResolverNormalizesUsernames(t *testing.T) {
	inner := &countingResolver{identity: &models.ExternalIdentity{PlatformID: "uuid-steve", Username: "Steve"}}
	cached := NewCached(inner)

	_, err := cached.Resolve(context.Background(), "Steve")
	require.NoError(t, err)
	_, err = cached.Resolve(context.Background(), "  steve ")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
}

func TestCachedResolverDoesNotCacheMisses(t *testing.T) {
	inner := &countingResolver{}
	cached := NewCached(inner)

	for i := 0; i < 2; i++ {
		id, err := cached.Resolve(context.Background(), "Nonexistent_User_404")
		require.NoError(t, err)
		assert.Nil(t, id)
	}

	assert.Equal(t, 2, inner.calls)
}
