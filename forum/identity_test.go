// forum/identity_test.go
package forum

import (
	"context"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSessionContext gives each test its own fresh session, the way
// LoadAndSave does per request.
func newSessionContext(t *testing.T, sessions *scs.SessionManager) context.Context {
	ctx, err := sessions.Load(context.Background(), "")
	require.NoError(t, err)
	return ctx
}

func TestIdentityProvider_GetOrCreateCaches(t *testing.T) {
	sessions := scs.New()
	provider := NewIdentityProvider(sessions)
	ctx := newSessionContext(t, sessions)

	id1, err := provider.GetOrCreate(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^anon_[A-Za-z0-9]{8}_[0-9a-z]+$`, id1)

	id2, err := provider.GetOrCreate(ctx)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestIdentityProvider_Regenerate(t *testing.T) {
	sessions := scs.New()
	provider := NewIdentityProvider(sessions)
	ctx := newSessionContext(t, sessions)

	id1, err := provider.GetOrCreate(ctx)
	require.NoError(t, err)

	id2, err := provider.Regenerate(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	// The regenerated id is now the cached one.
	id3, err := provider.GetOrCreate(ctx)
	require.NoError(t, err)
	assert.Equal(t, id2, id3)
}

func TestIdentityProvider_SeparateSessions(t *testing.T) {
	sessions := scs.New()
	provider := NewIdentityProvider(sessions)

	id1, err := provider.GetOrCreate(newSessionContext(t, sessions))
	require.NoError(t, err)
	id2, err := provider.GetOrCreate(newSessionContext(t, sessions))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestIdentityProvider_NoSessionManager(t *testing.T) {
	// Without session storage every call is a fresh, uncached id.
	provider := NewIdentityProvider(nil)
	ctx := context.Background()

	id1, err := provider.GetOrCreate(ctx)
	require.NoError(t, err)
	id2, err := provider.GetOrCreate(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
	assert.Regexp(t, `^anon_[A-Za-z0-9]{8}_[0-9a-z]+$`, id1)
}
