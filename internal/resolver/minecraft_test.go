package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinecraftVariant(t *testing.T) {
	tests := []struct {
		username string
		want     string
	}{
		{"Steve", "Minecraft Java"},
		{"x_Alex_x", "Minecraft Java"},
		{".Gamer", "Minecraft Bedrock"},
		{"..DoubleDot", "Minecraft Bedrock"},
		{". spaced", "Minecraft Java"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MinecraftVariant(tt.username), tt.username)
	}
}

func newTestResolver(java, xbox, skin http.HandlerFunc) (*MinecraftResolver, func()) {
	javaSrv := httptest.NewServer(java)
	xboxSrv := httptest.NewServer(xbox)
	skinSrv := httptest.NewServer(skin)

	r := NewMinecraftResolver()
	r.javaURL = javaSrv.URL
	r.xboxURL = xboxSrv.URL
	r.skinURL = skinSrv.URL

	return r, func() {
		javaSrv.Close()
		xboxSrv.Close()
		skinSrv.Close()
	}
}

func TestMinecraftResolveJava(t *testing.T) {
	r, cleanup := newTestResolver(
		func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`{"success":true,"data":{"player":{"id":"uuid-steve","username":"Steve"}}}`))
		},
		func(w http.ResponseWriter, req *http.Request) {
			t.Error("bedrock endpoint should not be called")
		},
		func(w http.ResponseWriter, req *http.Request) {},
	)
	defer cleanup()

	id, err := r.Resolve(context.Background(), "Steve")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "uuid-steve", id.PlatformID)
	assert.Equal(t, "Steve", id.Username)
}

func TestMinecraftResolveFallsBackToBedrock(t *testing.T) {
	r, cleanup := newTestResolver(
		func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`{"success":false}`))
		},
		func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`{"gamertag":"Gamer","xuid":123456,"floodgateuid":"fg-uuid"}`))
		},
		func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`{"texture_id":"tex-1"}`))
		},
	)
	defer cleanup()

	id, err := r.Resolve(context.Background(), "Gamer")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "fg-uuid", id.PlatformID)
	assert.Equal(t, ".Gamer", id.Username)
	assert.Contains(t, id.AvatarURL, "tex-1")
}

func TestMinecraftResolveBedrockPrefixSkipsJava(t *testing.T) {
	r, cleanup := newTestResolver(
		func(w http.ResponseWriter, req *http.Request) {
			t.Error("java endpoint should not be called for a prefixed gamertag")
		},
		func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "/Gamer", req.URL.Path)
			w.Write([]byte(`{"gamertag":"Gamer","xuid":123456,"floodgateuid":"fg-uuid"}`))
		},
		func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	)
	defer cleanup()

	id, err := r.Resolve(context.Background(), ".Gamer")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "fg-uuid", id.PlatformID)
	assert.Empty(t, id.AvatarURL)
}

func TestMinecraftResolveMiss(t *testing.T) {
	r, cleanup := newTestResolver(
		func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`{"success":false}`))
		},
		func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
		func(w http.ResponseWriter, req *http.Request) {},
	)
	defer cleanup()

	id, err := r.Resolve(context.Background(), "Nonexistent_User_404")
	require.NoError(t, err)
	assert.Nil(t, id)
}
