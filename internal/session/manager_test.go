package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrendo/arrendo-ui/internal/adapters/tokenstore"
	domainauth "github.com/arrendo/arrendo-ui/internal/domain/auth"
	"github.com/arrendo/arrendo-ui/internal/ports"
)

func landlordCreds(token string) ports.Credentials {
	return ports.Credentials{
		Tokens: domainauth.Tokens{AccessToken: token},
		User: domainauth.User{
			ID:          "u1",
			Email:       "a@b.com",
			FullName:    "Ana Bern",
			Roles:       []domainauth.Role{domainauth.RoleLandlord},
			DefaultRole: domainauth.RoleLandlord,
		},
	}
}

func TestManager_StartsLoading(t *testing.T) {
	m := NewManager(tokenstore.New(), nil)

	snap := m.Snapshot()
	assert.True(t, snap.Loading)
	assert.Nil(t, snap.User)
	assert.Nil(t, snap.Tokens)
	assert.False(t, snap.Authenticated())
}

func TestManager_InstallIsAtomic(t *testing.T) {
	tokens := tokenstore.New()
	m := NewManager(tokens, nil)

	m.Install(landlordCreds("tok1"))

	snap := m.Snapshot()
	require.NotNil(t, snap.User)
	require.NotNil(t, snap.Tokens)
	assert.False(t, snap.Loading)
	assert.Equal(t, "tok1", snap.Tokens.AccessToken)
	assert.Equal(t, "tok1", tokens.Get())
}

func TestManager_ClearDropsUserAndToken(t *testing.T) {
	tokens := tokenstore.New()
	m := NewManager(tokens, nil)
	m.Install(landlordCreds("tok1"))

	m.Clear()

	snap := m.Snapshot()
	assert.Nil(t, snap.User)
	assert.Nil(t, snap.Tokens)
	assert.False(t, snap.Loading)
	assert.Empty(t, tokens.Get())
}

func TestManager_LoadingEndsExactlyOnce(t *testing.T) {
	m := NewManager(tokenstore.New(), nil)

	select {
	case <-m.Resolved():
		t.Fatal("resolved before any transition")
	default:
	}

	m.Clear()

	select {
	case <-m.Resolved():
	default:
		t.Fatal("resolved channel not closed after first transition")
	}
	assert.False(t, m.Loading())

	// Later transitions never flip loading back.
	m.Install(landlordCreds("tok1"))
	assert.False(t, m.Loading())
	m.Clear()
	assert.False(t, m.Loading())
}

func TestManager_HasRole(t *testing.T) {
	m := NewManager(tokenstore.New(), nil)

	// No user present: always false.
	assert.False(t, m.HasRole(domainauth.RoleLandlord))

	m.Install(landlordCreds("tok1"))
	assert.True(t, m.HasRole(domainauth.RoleLandlord))
	assert.False(t, m.HasRole(domainauth.RoleAdmin))
	assert.True(t, m.HasRole(domainauth.RoleAdmin, domainauth.RoleLandlord))

	m.Clear()
	assert.False(t, m.HasRole(domainauth.RoleLandlord))
}

func TestManager_InstallIfCurrent_StaleGenerationDiscarded(t *testing.T) {
	tokens := tokenstore.New()
	m := NewManager(tokens, nil)

	stale := m.Generation()
	m.Install(landlordCreds("tok1")) // the user logged in meanwhile

	discarded := landlordCreds("tok-stale")
	assert.False(t, m.InstallIfCurrent(stale, discarded))

	snap := m.Snapshot()
	require.NotNil(t, snap.Tokens)
	assert.Equal(t, "tok1", snap.Tokens.AccessToken)
	assert.Equal(t, "tok1", tokens.Get())
}

func TestManager_InstallIfCurrent_RepairsTokenSideEffect(t *testing.T) {
	tokens := tokenstore.New()
	m := NewManager(tokens, nil)

	stale := m.Generation()
	m.Install(landlordCreds("tok1"))

	// A superseded gateway call already wrote its token into the store.
	tokens.Set("tok-stale")
	assert.False(t, m.InstallIfCurrent(stale, landlordCreds("tok-stale")))

	// The store was re-synced to the winning state.
	assert.Equal(t, "tok1", tokens.Get())
}

func TestManager_ClearIfCurrent(t *testing.T) {
	m := NewManager(tokenstore.New(), nil)

	gen := m.Generation()
	assert.True(t, m.ClearIfCurrent(gen))

	// The clear moved the generation on; the old handle is dead.
	assert.False(t, m.ClearIfCurrent(gen))
}

func TestManager_ChangedSignalsOnTransition(t *testing.T) {
	m := NewManager(tokenstore.New(), nil)

	changed := m.Changed()
	m.Install(landlordCreds("tok1"))

	select {
	case <-changed:
	case <-time.After(time.Second):
		t.Fatal("changed channel not closed on transition")
	}

	// A fresh channel is armed for the next transition.
	select {
	case <-m.Changed():
		t.Fatal("new changed channel closed without a transition")
	default:
	}
}
