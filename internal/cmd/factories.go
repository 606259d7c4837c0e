package cmd

import (
	"context"
	"time"

	adaptergateway "github.com/lumina-ai/lumina-console/internal/adapters/gateway"
	adapterstorage "github.com/lumina-ai/lumina-console/internal/adapters/storage"
	"github.com/lumina-ai/lumina-console/internal/logging"
	"github.com/lumina-ai/lumina-console/internal/metrics"
	"github.com/lumina-ai/lumina-console/internal/services"
	"github.com/lumina-ai/lumina-console/internal/ui"
)

// ContainerConfig holds the resolved configuration a Container is built from
type ContainerConfig struct {
	BaseURL string
	DBPath  string
	Debug   bool
	Retries int
	Timeout time.Duration
}

// Container holds all dependencies for the application
type Container struct {
	// Services
	LogService     *services.LogService
	ProfileService *services.ProfileService
	SessionService *services.SessionService

	Gateway *adaptergateway.Client
	Metrics *metrics.Recorder

	// Internal - for cleanup only
	store *adapterstorage.CredentialStore
}

// NewContainer creates a new Container with all dependencies wired and the
// persisted session restored
func NewContainer(ctx context.Context, cfg ContainerConfig) (*Container, error) {
	// Create adapters
	store, err := adapterstorage.NewCredentialStore(cfg.DBPath, cfg.Debug)
	if err != nil {
		return nil, err
	}

	recorder := metrics.New()

	// The gateway reads its bearer credential from the session service, which in
	// turn authenticates through the gateway
	sessionService := services.NewSessionService(nil, store, store, recorder)
	gw, err := adaptergateway.NewClient(cfg.BaseURL, sessionService,
		adaptergateway.WithTimeout(cfg.Timeout),
		adaptergateway.WithRetries(cfg.Retries),
	)
	if err != nil {
		store.Close()
		return nil, err
	}
	sessionService.SetAuthenticator(gw)

	if _, err := sessionService.Restore(ctx); err != nil {
		logging.Logger.Warn("Failed to restore session, starting logged out", "error", err)
	}

	return &Container{
		Gateway:        gw,
		LogService:     services.NewLogService(gw, sessionService),
		Metrics:        recorder,
		ProfileService: services.NewProfileService(gw, sessionService),
		SessionService: sessionService,
		store:          store,
	}, nil
}

// NewModel builds a console model on the shared services
func (c *Container) NewModel(opts ui.Options) *ui.Model {
	return ui.NewModel(c.SessionService, c.LogService, c.ProfileService, c.Metrics, opts)
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
