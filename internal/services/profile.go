package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/logging"
	"github.com/lumina-ai/lumina-console/internal/ports"
)

// ProfileService forwards profile changes to the gateway. It never touches the session:
// a renamed operator keeps the principal they logged in with until the next login.
type ProfileService struct {
	sessions *SessionService
	updater  ports.ProfileUpdater
}

// NewProfileService creates a new ProfileService
func NewProfileService(updater ports.ProfileUpdater, sessions *SessionService) *ProfileService {
	return &ProfileService{sessions: sessions, updater: updater}
}

// UpdateProfile validates and sends the update
func (s *ProfileService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) error {
	if !s.sessions.Current().IsAuthenticated() {
		return domain.ErrNotAuthenticated
	}

	update.Username = strings.TrimSpace(update.Username)
	if update.Username == "" {
		return errors.New("username is required")
	}
	if update.Password != "" && update.OriginalPassword == "" {
		return errors.New("current password is required to set a new password")
	}

	if err := s.updater.UpdateProfile(ctx, update); err != nil {
		logging.Logger.Warn("Profile update failed", "error", err)
		return fmt.Errorf("failed to update profile: %w", err)
	}

	logging.Logger.Info("Profile updated", "username", update.Username, "password_changed", update.Password != "")
	return nil
}
