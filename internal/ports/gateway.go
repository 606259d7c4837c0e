package ports

import (
	"context"

	"github.com/lumina-ai/lumina-console/internal/domain"
)

// Authenticator exchanges credentials with the gateway.
// Login never attaches a bearer credential.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (domain.LoginResult, error)
	Logout(ctx context.Context) error
}

// LogReader reads request logs
type LogReader interface {
	Page(ctx context.Context, page, size int) (domain.LogPage, error)
	Detail(ctx context.Context, id string) (domain.LogDetail, error)
}

// ProfileUpdater updates the operator's profile
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) error
}

// Gateway is the composite interface implemented by the HTTP adapter
type Gateway interface {
	Authenticator
	LogReader
	ProfileUpdater
}

// CredentialSource supplies the bearer credential attached to gateway requests
type CredentialSource interface {
	Credential() string
}
