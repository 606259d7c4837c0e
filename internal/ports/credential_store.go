package ports

import (
	"context"

	"github.com/lumina-ai/lumina-console/internal/domain"
)

// CredentialReader loads persisted credentials.
// Missing or partial state is returned as empty Credentials, not an error.
type CredentialReader interface {
	Load(ctx context.Context) (domain.Credentials, error)
}

// CredentialWriter persists and clears credentials atomically
type CredentialWriter interface {
	Clear(ctx context.Context) error
	Save(ctx context.Context, creds domain.Credentials) error
}

// CredentialStore is the composite interface
type CredentialStore interface {
	CredentialReader
	CredentialWriter
	Close() error
}
