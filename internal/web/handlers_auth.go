package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/arrendo/arrendo-ui/internal/apperrors"
	domainauth "github.com/arrendo/arrendo-ui/internal/domain/auth"
	"github.com/arrendo/arrendo-ui/internal/oauth"
	"github.com/arrendo/arrendo-ui/internal/observability/metrics"
	"github.com/arrendo/arrendo-ui/internal/ports"
	"github.com/arrendo/arrendo-ui/internal/session"
)

// AuthHandlers serves login, logout, the OAuth redirect endpoints, and the
// session introspection endpoint.
type AuthHandlers struct {
	Sessions  *session.Manager
	Gateway   ports.Gateway
	Initiator *oauth.Initiator
	Callback  *oauth.Callback
	Providers []string
	Logger    *slog.Logger
}

// sessionView is the JSON shape of GET /api/session.
type sessionView struct {
	Loading       bool             `json:"loading"`
	Authenticated bool             `json:"authenticated"`
	User          *domainauth.User `json:"user,omitempty"`
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage renders the login form. An already-authenticated visit bounces
// straight to the app; while the bootstrap is resolving, the request waits so
// a resumed session never sees the form flash by.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	select {
	case <-h.Sessions.Resolved():
	case <-r.Context().Done():
		return
	}

	if _, ok := h.Sessions.User(); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	renderLogin(w, http.StatusOK, loginPageData{Providers: h.Providers})
}

// Login handles the password login form. It accepts both a browser form post
// and a JSON body.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	form, ok := h.readLoginForm(w, r)
	if !ok {
		return
	}

	if err := checkForm(form); err != nil {
		metrics.ObserveLogin(metrics.MethodPassword, err)
		h.loginFailed(w, r, err)
		return
	}

	creds, err := h.Gateway.LoginWithPassword(r.Context(), form.Email, form.Password)
	metrics.ObserveLogin(metrics.MethodPassword, err)
	if err != nil {
		h.logger().WarnContext(r.Context(), "password login failed", "error", err)
		h.loginFailed(w, r, err)
		return
	}

	h.Sessions.Install(creds)
	h.logger().InfoContext(r.Context(), "password login succeeded", "user_id", creds.User.ID)

	if wantsJSON(r) {
		WriteJSON(w, http.StatusOK, h.currentSession())
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// readLoginForm decodes the login request from either encoding.
func (h *AuthHandlers) readLoginForm(w http.ResponseWriter, r *http.Request) (loginForm, bool) {
	var form loginForm
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if !DecodeJSON(w, r, &form) {
			return loginForm{}, false
		}
		return form, true
	}
	if err := r.ParseForm(); err != nil {
		h.loginFailed(w, r, apperrors.Validation("malformed form body").Wrap(err))
		return loginForm{}, false
	}
	form.Email = r.PostFormValue("email")
	form.Password = r.PostFormValue("password")
	return form, true
}

func (h *AuthHandlers) loginFailed(w http.ResponseWriter, r *http.Request, err error) {
	if wantsJSON(r) {
		WriteError(w, err)
		return
	}
	renderLogin(w, statusFor(apperrors.CodeOf(err)), loginPageData{
		Error:     loginErrorMessage(err),
		Providers: h.Providers,
	})
}

// loginErrorMessage keeps backend detail out of the page.
func loginErrorMessage(err error) string {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeUnauthorized:
		return "Invalid email or password."
	case apperrors.ErrCodeValidation:
		return "Please check the email and password you entered."
	case apperrors.ErrCodeUnavailable:
		return "The service is unreachable right now. Try again in a moment."
	default:
		return "Sign in failed. Try again."
	}
}

// Logout ends the session. The local state is cleared even when the backend
// call fails; a dead server must not be able to keep a client signed in.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	metrics.ObserveLogout()

	if err := h.Gateway.Logout(r.Context()); err != nil {
		h.logger().WarnContext(r.Context(), "backend logout failed, clearing local session anyway", "error", err)
	}
	h.Sessions.Clear()

	if wantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// OAuthStart begins a third-party login and redirects the browser to the
// provider. Nothing is stored and no redirect happens when the provider is
// not configured.
func (h *AuthHandlers) OAuthStart(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")

	authURL, err := h.Initiator.Begin(r.Context(), provider)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "oauth initiation failed", "provider", provider, "error", err)
		if wantsJSON(r) {
			WriteError(w, err)
			return
		}
		renderCallbackError(w, statusFor(apperrors.CodeOf(err)), loginErrorMessage(err))
		return
	}

	metrics.ObserveOAuthInitiation(provider)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// OAuthCallback completes a third-party login when the provider redirects
// back. Failures are terminal: the page offers the manual way back to the
// login form instead of retrying.
func (h *AuthHandlers) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := oauth.CallbackParams{
		Provider: q.Get("provider"),
		Code:     q.Get("code"),
		State:    q.Get("state"),
	}

	status, err := h.Callback.Complete(r.Context(), params)
	metrics.ObserveOAuthCallback(params.Provider, err)
	if status != oauth.StatusDone {
		h.logger().WarnContext(r.Context(), "oauth callback failed", "provider", params.Provider, "error", err)
		renderCallbackError(w, statusFor(apperrors.CodeOf(err)), callbackErrorMessage(err))
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func callbackErrorMessage(err error) string {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeValidation:
		return "The provider did not return an authorization code."
	case apperrors.ErrCodeStateMismatch:
		return "This sign-in attempt could not be verified. Start again from the login page."
	case apperrors.ErrCodeUnavailable:
		return "The service is unreachable right now. Try again in a moment."
	default:
		return "Sign in failed. Start again from the login page."
	}
}

// SessionInfo reports the current session state, including whether the
// startup bootstrap is still resolving. The route is deliberately unguarded:
// the UI calls it to decide between the login and authenticated views, so it
// must answer before any session exists.
func (h *AuthHandlers) SessionInfo(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.currentSession())
}

func (h *AuthHandlers) currentSession() sessionView {
	snap := h.Sessions.Snapshot()
	return sessionView{
		Loading:       snap.Loading,
		Authenticated: snap.Authenticated(),
		User:          snap.User,
	}
}
