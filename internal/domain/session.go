package domain

import "time"

// Session is the console's view of the operator's authentication state.
// IsAuthenticated is derived from Credential so the two can never disagree.
type Session struct {
	Credential string
	// ExpiresAt is informational only. It is decoded from the credential when the
	// credential is a JWT carrying an exp claim; zero means unknown.
	ExpiresAt time.Time
	Principal string
}

// IsAuthenticated reports whether the session holds a credential.
func (s Session) IsAuthenticated() bool {
	return s.Credential != ""
}

// LooksExpired reports whether the decoded expiry lies before now.
// Unknown expiry never looks expired.
func (s Session) LooksExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}

// Credentials is the persisted pair read and written by a CredentialStore
type Credentials struct {
	Credential string
	Principal  string
}

// Complete reports whether both halves are present. Partial pairs are treated as absent.
func (c Credentials) Complete() bool {
	return c.Credential != "" && c.Principal != ""
}

// LoginResult is the decoded payload of a successful login
type LoginResult struct {
	ExpiresIn int64 // seconds, as reported by the gateway
	Token     string
	Username  string
}

// ProfileUpdate is the body of a profile update request
type ProfileUpdate struct {
	OriginalPassword string
	Password         string
	Username         string
}
