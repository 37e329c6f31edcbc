package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrendo/arrendo-ui/internal/adapters/tokenstore"
	"github.com/arrendo/arrendo-ui/internal/apperrors"
	domainauth "github.com/arrendo/arrendo-ui/internal/domain/auth"
)

// validSession is the canonical successful auth response.
var validSession = map[string]any{
	"accessToken": "tok1",
	"user": map[string]any{
		"id":          "u1",
		"email":       "a@b.com",
		"fullName":    "Ana Bern",
		"roles":       []string{"landlord"},
		"defaultRole": "landlord",
	},
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *tokenstore.Memory) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := tokenstore.New()
	client, err := New(Config{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
		Tokens:  tokens,
	})
	require.NoError(t, err)
	return client, tokens
}

func writeBody(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestLoginWithPassword_Success(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])
		assert.Equal(t, "12345678", body["password"])

		writeBody(t, w, validSession)
	}))

	creds, err := client.LoginWithPassword(context.Background(), "a@b.com", "12345678")
	require.NoError(t, err)

	assert.Equal(t, "tok1", creds.Tokens.AccessToken)
	assert.Equal(t, "u1", creds.User.ID)
	assert.Equal(t, []domainauth.Role{domainauth.RoleLandlord}, creds.User.Roles)

	// The token is usable for follow-up calls immediately.
	assert.Equal(t, "tok1", tokens.Get())
}

func TestLoginWithPassword_RejectedCredentials(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.LoginWithPassword(context.Background(), "a@b.com", "wrongpassword")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthorized))
	assert.Empty(t, tokens.Get())
}

func TestLoginWithPassword_SchemaViolation(t *testing.T) {
	// Missing accessToken: the payload must be rejected and no token installed.
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeBody(t, w, map[string]any{
			"user": map[string]any{
				"id":          "u1",
				"email":       "a@b.com",
				"fullName":    "Ana Bern",
				"roles":       []string{"landlord"},
				"defaultRole": "landlord",
			},
		})
	}))

	_, err := client.LoginWithPassword(context.Background(), "a@b.com", "12345678")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))
	assert.Empty(t, tokens.Get())
}

func TestLoginWithPassword_UnknownRoleRejected(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeBody(t, w, map[string]any{
			"accessToken": "tok1",
			"user": map[string]any{
				"id":          "u1",
				"email":       "a@b.com",
				"fullName":    "Ana Bern",
				"roles":       []string{"superuser"},
				"defaultRole": "superuser",
			},
		})
	}))

	_, err := client.LoginWithPassword(context.Background(), "a@b.com", "12345678")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))
}

func TestFetchProfile_NoTokenFailsBeforeNetwork(t *testing.T) {
	called := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	_, err := client.FetchProfile(context.Background())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthorized))
	assert.False(t, called)
}

func TestFetchProfile_AttachesBearerToken(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok1", r.Header.Get("Authorization"))
		writeBody(t, w, validSession["user"])
	}))
	tokens.Set("tok1")

	user, err := client.FetchProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana Bern", user.FullName)
}

func TestRefresh_InstallsNewToken(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/refresh", r.URL.Path)
		writeBody(t, w, map[string]string{"accessToken": "tok2"})
	}))

	got, err := client.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok2", got.AccessToken)
	assert.Equal(t, "tok2", tokens.Get())
}

func TestRefresh_RejectedLeavesNoToken(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Refresh(context.Background())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthorized))
	assert.Empty(t, tokens.Get())
}

func TestLogout_ClearsTokenOnSuccess(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/logout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	tokens.Set("tok1")

	require.NoError(t, client.Logout(context.Background()))
	assert.Empty(t, tokens.Get())
}

func TestLogout_ClearsTokenEvenWhenBackendFails(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	tokens.Set("tok1")

	err := client.Logout(context.Background())
	assert.Error(t, err)
	assert.Empty(t, tokens.Get())
}

func TestExchangeOAuthCode_PostsToProviderEndpoint(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/google/callback", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "code-1", body["code"])
		assert.Equal(t, "state-1", body["state"])

		writeBody(t, w, validSession)
	}))

	creds, err := client.ExchangeOAuthCode(context.Background(), "google", "code-1", "state-1")
	require.NoError(t, err)
	assert.Equal(t, "tok1", creds.Tokens.AccessToken)
	assert.Equal(t, "tok1", tokens.Get())
}

func TestExchangeOAuthCode_RequiresCode(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := client.ExchangeOAuthCode(context.Background(), "google", "", "state-1")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))
}

func TestDoJSON_TransportFailureIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // immediately unreachable

	tokens := tokenstore.New()
	client, err := New(Config{BaseURL: server.URL, Tokens: tokens})
	require.NoError(t, err)

	_, err = client.Refresh(context.Background())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnavailable))
}
