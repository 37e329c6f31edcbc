// Package mocks provides mock implementations for testing the auth gateway.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the backend gateway port. The mocks are generated using go:generate
// directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	gateway := mocks.NewMockGateway(ctrl)
//	gateway.EXPECT().Refresh(gomock.Any()).Return(tokens, nil)
package mocks

// Generate mock for Gateway interface from internal/ports package.
// This creates MockGateway with methods for all Gateway interface methods:
// LoginWithPassword, FetchProfile, Refresh, Logout, ExchangeOAuthCode
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=gateway_mock.go github.com/arrendo/arrendo-ui/internal/ports Gateway
