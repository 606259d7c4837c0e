package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/logging"
	"github.com/lumina-ai/lumina-console/internal/metrics"
	"github.com/lumina-ai/lumina-console/internal/ports"
)

// DefaultLogoutTimeout bounds the best-effort remote logout
const DefaultLogoutTimeout = 3 * time.Second

// SessionService owns the operator's session. Login and Logout are its only mutators;
// every other component reads it through Current or Credential.
type SessionService struct {
	auth          ports.Authenticator
	logoutTimeout time.Duration
	metrics       *metrics.Recorder
	now           func() time.Time
	reader        ports.CredentialReader
	writer        ports.CredentialWriter

	mu      sync.RWMutex
	session domain.Session
}

// Verify interface compliance at compile time
var _ ports.CredentialSource = (*SessionService)(nil)

// NewSessionService creates a new SessionService. recorder may be nil.
func NewSessionService(
	auth ports.Authenticator,
	reader ports.CredentialReader,
	writer ports.CredentialWriter,
	recorder *metrics.Recorder,
) *SessionService {
	return &SessionService{
		auth:          auth,
		logoutTimeout: DefaultLogoutTimeout,
		metrics:       recorder,
		now:           time.Now,
		reader:        reader,
		writer:        writer,
	}
}

// SetAuthenticator wires the gateway after construction. The gateway needs the
// service as its credential source, so the two cannot be built in one step.
func (s *SessionService) SetAuthenticator(auth ports.Authenticator) {
	s.auth = auth
}

// Restore loads the persisted session. Both credential and principal must be present;
// anything else restores as unauthenticated. Expiry is decoded but not enforced.
func (s *SessionService) Restore(ctx context.Context) (domain.Session, error) {
	creds, err := s.reader.Load(ctx)
	if err != nil {
		logging.Logger.Error("Failed to restore session", "error", err)
		s.set(domain.Session{})
		return domain.Session{}, fmt.Errorf("failed to restore session: %w", err)
	}

	if !creds.Complete() {
		logging.Logger.Debug("No persisted session")
		s.set(domain.Session{})
		return domain.Session{}, nil
	}

	session := domain.Session{
		Credential: creds.Credential,
		ExpiresAt:  credentialExpiry(creds.Credential),
		Principal:  creds.Principal,
	}
	if session.LooksExpired(s.now()) {
		logging.Logger.Warn("Restored credential looks expired, keeping it until the gateway rejects it",
			"principal", session.Principal,
			"expires_at", session.ExpiresAt)
	}

	logging.Logger.Info("Session restored", "principal", session.Principal)
	s.set(session)
	return session, nil
}

// Login authenticates against the gateway and persists the result. On failure the
// persisted and in-memory session are left untouched and a *domain.AuthError is returned.
func (s *SessionService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	logging.Logger.Info("Logging in", "username", username)

	result, err := s.auth.Login(ctx, username, password)
	if err != nil {
		logging.Logger.Warn("Login failed", "username", username, "error", err)
		s.metrics.Auth("login", metrics.OutcomeFailed)
		return s.Current(), domain.NewAuthError(err)
	}

	creds := domain.Credentials{Credential: result.Token, Principal: result.Username}
	if err := s.writer.Save(ctx, creds); err != nil {
		logging.Logger.Error("Failed to persist session", "error", err)
		s.metrics.Auth("login", metrics.OutcomeFailed)
		return s.Current(), &domain.AuthError{Err: err, Message: "login succeeded but the session could not be saved"}
	}

	session := domain.Session{
		Credential: result.Token,
		ExpiresAt:  credentialExpiry(result.Token),
		Principal:  result.Username,
	}
	if session.ExpiresAt.IsZero() && result.ExpiresIn > 0 {
		session.ExpiresAt = s.now().Add(time.Duration(result.ExpiresIn) * time.Second)
	}

	s.set(session)
	s.metrics.Auth("login", metrics.OutcomeSuccess)
	logging.Logger.Info("Logged in", "principal", session.Principal, "expires_at", session.ExpiresAt)
	return session, nil
}

// Logout always ends unauthenticated. The remote call is best effort with a bounded
// timeout; persisted and in-memory state are cleared whatever it returns.
func (s *SessionService) Logout(ctx context.Context) domain.Session {
	current := s.Current()

	// The remote call runs before local state is cleared so the gateway
	// still attaches the credential being revoked.
	if current.IsAuthenticated() {
		remoteCtx, cancel := context.WithTimeout(ctx, s.logoutTimeout)
		err := s.auth.Logout(remoteCtx)
		cancel()
		if err != nil {
			logging.Logger.Warn("Remote logout failed, clearing local session anyway", "error", err)
			s.metrics.Auth("logout", metrics.OutcomeFailed)
		} else {
			s.metrics.Auth("logout", metrics.OutcomeSuccess)
		}
	}

	if err := s.writer.Clear(context.WithoutCancel(ctx)); err != nil {
		logging.Logger.Error("Failed to clear persisted session", "error", err)
	}

	s.set(domain.Session{})
	logging.Logger.Info("Logged out", "principal", current.Principal)
	return domain.Session{}
}

// Current returns a copy of the session
func (s *SessionService) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Credential returns the bearer credential, or "" when unauthenticated
func (s *SessionService) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Credential
}

func (s *SessionService) set(session domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

// credentialExpiry reads the exp claim without verifying the signature.
// Opaque credentials and tokens without exp yield the zero time.
func credentialExpiry(credential string) time.Time {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
