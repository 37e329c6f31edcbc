package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result constants for metric labeling.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Login method labels.
const (
	MethodPassword = "password"
	MethodOAuth    = "oauth"
)

var (
	logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arrendo_auth_logins_total",
		Help: "Login attempts by method and result.",
	}, []string{"method", "result"})

	logouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arrendo_auth_logouts_total",
		Help: "Logout requests.",
	})

	oauthInitiations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arrendo_oauth_initiations_total",
		Help: "OAuth flows initiated, by provider.",
	}, []string{"provider"})

	oauthCallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arrendo_oauth_callbacks_total",
		Help: "OAuth callbacks completed, by provider and result.",
	}, []string{"provider", "result"})
)

// result maps an error to its result label.
func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}

// ObserveLogin records one login attempt.
func ObserveLogin(method string, err error) {
	logins.WithLabelValues(method, result(err)).Inc()
}

// ObserveLogout records one logout request.
func ObserveLogout() {
	logouts.Inc()
}

// ObserveOAuthInitiation records one initiated OAuth flow.
func ObserveOAuthInitiation(provider string) {
	oauthInitiations.WithLabelValues(provider).Inc()
}

// ObserveOAuthCallback records one completed OAuth callback.
func ObserveOAuthCallback(provider string, err error) {
	oauthCallbacks.WithLabelValues(provider, result(err)).Inc()
}

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
