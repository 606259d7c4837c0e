package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/logging"
	"github.com/lumina-ai/lumina-console/internal/ports"
)

// CredentialStore persists the session credential and principal in sqlite
type CredentialStore struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.CredentialStore = (*CredentialStore)(nil)

// NewCredentialStore opens (and creates if needed) the database at dbPath
func NewCredentialStore(dbPath string, debug bool) (*CredentialStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:      newGormLogger(debug),
		NowFunc:     func() time.Time { return time.Now().UTC() },
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets several console processes (CLI, TUI, SSH server) share the file
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			logging.Logger.Warn("Failed to apply pragma", "pragma", pragma, "error", err)
		}
	}

	if err := db.AutoMigrate(&KVModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv schema: %w", err)
	}

	// The file holds a bearer credential
	if err := os.Chmod(dbPath, 0600); err != nil {
		logging.Logger.Warn("Failed to restrict database permissions", "path", dbPath, "error", err)
	}

	logging.Logger.Debug("Credential store opened", "path", dbPath)
	return &CredentialStore{db: db}, nil
}

// Close closes the underlying database
func (s *CredentialStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

// Load returns the persisted credentials. A missing or partial pair comes back as
// empty Credentials.
func (s *CredentialStore) Load(ctx context.Context) (domain.Credentials, error) {
	var rows []KVModel
	err := withRetry(ctx, func() error {
		return s.db.WithContext(ctx).
			Where("name IN ?", []string{keyCredential, keyPrincipal}).
			Find(&rows).Error
	})
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("failed to load credentials: %w", err)
	}

	var creds domain.Credentials
	for _, row := range rows {
		switch row.Name {
		case keyCredential:
			creds.Credential = row.Value
		case keyPrincipal:
			creds.Principal = row.Value
		}
	}

	if !creds.Complete() {
		if creds.Credential != "" || creds.Principal != "" {
			logging.Logger.Warn("Ignoring partial persisted session",
				"has_credential", creds.Credential != "",
				"has_principal", creds.Principal != "")
		}
		return domain.Credentials{}, nil
	}
	return creds, nil
}

// Save writes credential and principal in a single transaction
func (s *CredentialStore) Save(ctx context.Context, creds domain.Credentials) error {
	if !creds.Complete() {
		return errors.New("credential and principal are both required")
	}

	return withRetry(ctx, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			rows := []KVModel{
				{Name: keyCredential, Value: creds.Credential},
				{Name: keyPrincipal, Value: creds.Principal},
			}
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&rows).Error
		})
	})
}

// Clear removes both rows. Clearing an empty store is not an error.
func (s *CredentialStore) Clear(ctx context.Context) error {
	return withRetry(ctx, func() error {
		return s.db.WithContext(ctx).
			Where("name IN ?", []string{keyCredential, keyPrincipal}).
			Delete(&KVModel{}).Error
	})
}
