package oauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arrendo/arrendo-ui/internal/adapters/tokenstore"
	"github.com/arrendo/arrendo-ui/internal/apperrors"
	domainauth "github.com/arrendo/arrendo-ui/internal/domain/auth"
	"github.com/arrendo/arrendo-ui/internal/mocks"
	mockauth "github.com/arrendo/arrendo-ui/internal/mocks/auth"
	"github.com/arrendo/arrendo-ui/internal/ports"
	"github.com/arrendo/arrendo-ui/internal/session"
)

func oauthCreds() ports.Credentials {
	return ports.Credentials{
		Tokens: domainauth.Tokens{AccessToken: "tok-oauth"},
		User: domainauth.User{
			ID:          "u1",
			Email:       "a@b.com",
			FullName:    "Ana Bern",
			Roles:       []domainauth.Role{domainauth.RoleLandlord},
			DefaultRole: domainauth.RoleLandlord,
		},
	}
}

func TestCallback_CompleteInstallsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := mocks.NewMockGateway(ctrl)
	gateway.EXPECT().
		ExchangeOAuthCode(gomock.Any(), "google", "code-1", "state-1").
		Return(oauthCreds(), nil)

	challenges := &mockauth.ChallengeStoreStub{}
	require.NoError(t, challenges.Put(context.Background(), "state-1"))

	sessions := session.NewManager(tokenstore.New(), nil)
	callback := NewCallback(gateway, challenges, sessions, nil)

	status, err := callback.Complete(context.Background(), CallbackParams{
		Provider: "google",
		Code:     "code-1",
		State:    "state-1",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusDone, status)

	snap := sessions.Snapshot()
	require.True(t, snap.Authenticated())
	assert.Equal(t, "tok-oauth", snap.Tokens.AccessToken)
	assert.Equal(t, "u1", snap.User.ID)
}

func TestCallback_DefaultsToGoogle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := mocks.NewMockGateway(ctrl)
	gateway.EXPECT().
		ExchangeOAuthCode(gomock.Any(), "google", "code-1", "state-1").
		Return(oauthCreds(), nil)

	challenges := &mockauth.ChallengeStoreStub{}
	require.NoError(t, challenges.Put(context.Background(), "state-1"))

	sessions := session.NewManager(tokenstore.New(), nil)
	callback := NewCallback(gateway, challenges, sessions, nil)

	status, err := callback.Complete(context.Background(), CallbackParams{
		Code:  "code-1",
		State: "state-1",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusDone, status)
}

func TestCallback_MissingCode(t *testing.T) {
	gateway := &mockauth.GatewayStub{}
	sessions := session.NewManager(tokenstore.New(), nil)
	callback := NewCallback(gateway, &mockauth.ChallengeStoreStub{}, sessions, nil)

	status, err := callback.Complete(context.Background(), CallbackParams{State: "state-1"})
	assert.Equal(t, StatusError, status)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))
	assert.Empty(t, gateway.CallNames())
}

func TestCallback_StateMismatchBlocksExchange(t *testing.T) {
	gateway := &mockauth.GatewayStub{}
	challenges := &mockauth.ChallengeStoreStub{}
	require.NoError(t, challenges.Put(context.Background(), "state-1"))

	sessions := session.NewManager(tokenstore.New(), nil)
	callback := NewCallback(gateway, challenges, sessions, nil)

	status, err := callback.Complete(context.Background(), CallbackParams{
		Code:  "code-1",
		State: "forged",
	})
	assert.Equal(t, StatusError, status)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStateMismatch))

	// The exchange never ran and no session was installed.
	assert.Empty(t, gateway.CallNames())
	assert.False(t, sessions.Snapshot().Authenticated())
}

func TestCallback_ChallengeConsumedEvenOnMismatch(t *testing.T) {
	challenges := &mockauth.ChallengeStoreStub{}
	require.NoError(t, challenges.Put(context.Background(), "state-1"))

	sessions := session.NewManager(tokenstore.New(), nil)
	callback := NewCallback(&mockauth.GatewayStub{}, challenges, sessions, nil)

	_, err := callback.Complete(context.Background(), CallbackParams{Code: "code-1", State: "forged"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStateMismatch))

	// Replaying the correct state afterwards finds no challenge.
	status, err := callback.Complete(context.Background(), CallbackParams{Code: "code-1", State: "state-1"})
	assert.Equal(t, StatusError, status)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStateMismatch))
}

func TestCallback_NoOutstandingChallenge(t *testing.T) {
	sessions := session.NewManager(tokenstore.New(), nil)
	callback := NewCallback(&mockauth.GatewayStub{}, &mockauth.ChallengeStoreStub{}, sessions, nil)

	status, err := callback.Complete(context.Background(), CallbackParams{Code: "code-1", State: "state-1"})
	assert.Equal(t, StatusError, status)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStateMismatch))
}

func TestCallback_ExchangeFailureIsTerminal(t *testing.T) {
	gateway := &mockauth.GatewayStub{
		ExchangeFunc: func(context.Context, string, string, string) (ports.Credentials, error) {
			return ports.Credentials{}, apperrors.Remotef("POST /auth/google/callback returned status 502")
		},
	}
	challenges := &mockauth.ChallengeStoreStub{}
	require.NoError(t, challenges.Put(context.Background(), "state-1"))

	sessions := session.NewManager(tokenstore.New(), nil)
	callback := NewCallback(gateway, challenges, sessions, nil)

	status, err := callback.Complete(context.Background(), CallbackParams{Code: "code-1", State: "state-1"})
	assert.Equal(t, StatusError, status)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeRemote))
	assert.False(t, sessions.Snapshot().Authenticated())
}
