package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of transport/adapter concerns.

// Role represents an application's authorization role.
// Keep string form for easy serialization.
// Valid values are defined as constants below.
type Role string

const (
	RoleLandlord Role = "landlord"
	RoleAdmin    Role = "admin"
	RoleLegal    Role = "legal"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleLandlord, RoleAdmin, RoleLegal:
		return true
	}
	return false
}

// User is the authenticated principal as returned by the backend.
// A User is immutable once constructed; the session layer replaces it
// wholesale on every login, refresh, and bootstrap.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	Roles       []Role `json:"roles"`
	DefaultRole Role   `json:"defaultRole"`
}

// HasRole reports whether the user holds at least one of the given roles.
// Multiple roles are a logical OR, never an AND.
func (u User) HasRole(roles ...Role) bool {
	for _, required := range roles {
		for _, held := range u.Roles {
			if held == required {
				return true
			}
		}
	}
	return false
}

// Tokens holds the client-visible access credential. The refresh token is an
// HTTP-only cookie owned by the backend and is never represented here.
type Tokens struct {
	AccessToken string `json:"accessToken"`
}

// State is the session state observed by the rest of the application.
// User and Tokens are always set or cleared together; a State where only one
// of the two is present is never observable.
type State struct {
	User    *User
	Tokens  *Tokens
	Loading bool
}

// Authenticated reports whether a user session is established.
func (s State) Authenticated() bool {
	return s.User != nil && s.Tokens != nil
}
