package web

import (
	"log/slog"
	"net/http"

	domainauth "github.com/arrendo/arrendo-ui/internal/domain/auth"
	"github.com/arrendo/arrendo-ui/internal/observability/metrics"
	"github.com/arrendo/arrendo-ui/internal/session"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Sessions       *session.Manager
	Auth           *AuthHandlers
	Resources      *ResourceHandlers
	MetricsEnabled bool
	Logger         *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	auth := services.Auth
	mux.HandleFunc("GET /login", auth.LoginPage)
	mux.HandleFunc("POST /auth/login", auth.Login)
	mux.HandleFunc("POST /auth/logout", auth.Logout)
	mux.HandleFunc("GET /auth/callback", auth.OAuthCallback)
	mux.HandleFunc("GET /auth/{provider}", auth.OAuthStart)
	mux.HandleFunc("GET /api/session", auth.SessionInfo)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	if services.MetricsEnabled {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	requireAuth := RequireAuth(services.Sessions)
	contractsWrite := RequireRole(services.Sessions, domainauth.RoleLandlord, domainauth.RoleAdmin)
	noticesRead := RequireRole(services.Sessions, domainauth.RoleLegal, domainauth.RoleAdmin)

	res := services.Resources
	mux.Handle("GET /api/properties", requireAuth(http.HandlerFunc(res.ListProperties)))
	mux.Handle("GET /api/tenants", requireAuth(http.HandlerFunc(res.ListTenants)))
	mux.Handle("GET /api/contracts", requireAuth(http.HandlerFunc(res.ListContracts)))
	mux.Handle("GET /api/contracts/{id}", requireAuth(http.HandlerFunc(res.GetContract)))
	mux.Handle("POST /api/contracts", contractsWrite(http.HandlerFunc(res.CreateContract)))
	mux.Handle("GET /api/payments", requireAuth(http.HandlerFunc(res.ListPayments)))
	mux.Handle("GET /api/notices", noticesRead(http.HandlerFunc(res.ListNotices)))

	mux.Handle("GET /{$}", requireAuth(http.HandlerFunc(homeHandler(services.Sessions))))

	// RequestID sits outside Logging so the access log sees the ID it tags.
	handler := Logging(logger)(mux)
	handler = RequestID()(handler)
	handler = Recover(logger)(handler)
	return handler
}

// healthHandler is a liveness probe; it does not touch the backend.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// homeHandler renders the landing page for an authenticated session.
func homeHandler(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := sessions.User()
		if !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = homeTemplate.Execute(w, user)
	}
}
