package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/lumina-ai/lumina-console/internal/config"
	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/logging"
	"github.com/lumina-ai/lumina-console/internal/ui"
)

// Flag defaults, compared against in AfterApply to decide whether a settings value applies
const (
	defaultMaxLogFiles = logging.DefaultMaxLogFiles
	defaultRetries     = config.DefaultRetries
	defaultTimeout     = config.DefaultRequestTimeout
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	BaseURL     string           `help:"Gateway API base URL" env:"LUMINA_BASE_URL" default:"http://localhost:8080/api/v1"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"100"`
	MetricsAddr string           `help:"Serve Prometheus metrics on this address, e.g. :9090" env:"LUMINA_METRICS_ADDR"`
	Retries     int              `help:"Retries for idempotent gateway requests" env:"LUMINA_RETRIES" default:"2"`
	Timeout     time.Duration    `help:"Timeout of a single gateway request" env:"LUMINA_TIMEOUT" default:"10s"`

	Run         RunCmd         `cmd:"" help:"Start the console TUI (default)" default:"1"`
	Login       LoginCmd       `cmd:"login" help:"Log in to the gateway"`
	Logout      LogoutCmd      `cmd:"logout" help:"Log out and forget the stored credential"`
	Whoami      WhoamiCmd      `cmd:"whoami" help:"Show the logged in operator"`
	Logs        LogsCmd        `cmd:"logs" help:"Inspect request logs"`
	Profile     ProfileCmd     `cmd:"profile" help:"Manage the operator profile"`
	FakeGateway FakeGatewayCmd `cmd:"fake-gateway" help:"Run an in-memory gateway for demos and tests"`
	Serve       ServeCmd       `cmd:"serve" help:"Serve the console over SSH"`
	Settings    SettingsCmd    `cmd:"settings" help:"Inspect configuration"`
	ShowVersion VersionCmd     `cmd:"version" help:"Show version information"`

	container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
	stdout    io.Writer        `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply applies settings and initializes logging after CLI parsing.
// Precedence: CLI flags > env vars > settings file > defaults. A settings value
// only applies while the flag still holds its default and its env var is unset.
func (c *CLI) AfterApply(kctx *kong.Context) error {
	c.applySettings()

	_, err := logging.Initialize(logging.Options{
		Debug:       c.Debug,
		DebugFile:   c.DebugFile,
		MaxLogFiles: c.MaxLogFiles,
		Quiet:       kctx.Command() != "run",
	})
	if err != nil {
		return err
	}

	logging.Logger.Debug("Configuration resolved",
		"base_url", c.BaseURL,
		"retries", c.Retries,
		"timeout", c.Timeout,
		"metrics_addr", c.MetricsAddr)
	return nil
}

func (c *CLI) applySettings() {
	s := c.settings
	if s == nil {
		return
	}

	if c.BaseURL == config.DefaultBaseURL && !hasEnv("LUMINA_BASE_URL") && s.BaseURL != "" {
		c.BaseURL = s.BaseURL
	}
	if !c.Debug && !hasEnv("LUMINA_DEBUG") && s.Debug != nil && *s.Debug {
		c.Debug = true
	}
	if c.MaxLogFiles == defaultMaxLogFiles && !hasEnv("LUMINA_MAX_LOG_FILES") && s.MaxLogFiles != nil {
		c.MaxLogFiles = *s.MaxLogFiles
	}
	if c.MetricsAddr == "" && !hasEnv("LUMINA_METRICS_ADDR") && s.MetricsAddr != "" {
		c.MetricsAddr = s.MetricsAddr
	}
	if c.Retries == defaultRetries && !hasEnv("LUMINA_RETRIES") && s.Retries != nil {
		c.Retries = *s.Retries
	}
	if c.Timeout == defaultTimeout && !hasEnv("LUMINA_TIMEOUT") && s.RequestTimeoutSeconds != nil {
		c.Timeout = time.Duration(*s.RequestTimeoutSeconds) * time.Second
	}
}

func hasEnv(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}

// Services returns the container, creating it on first use. Commands that never
// talk to the gateway (fake-gateway, version) do not open the store.
func (c *CLI) Services() (*Container, error) {
	if c.container != nil {
		return c.container, nil
	}
	container, err := NewContainer(context.Background(), ContainerConfig{
		BaseURL: c.BaseURL,
		DBPath:  config.GetDBPath(),
		Debug:   c.Debug,
		Retries: c.Retries,
		Timeout: c.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	c.container = container
	return container, nil
}

// out is where commands print their results
func (c *CLI) out() io.Writer {
	if c.stdout != nil {
		return c.stdout
	}
	return os.Stdout
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.container != nil {
		return c.container.Close()
	}
	return nil
}

// UIOptions are the console flags shared by run and serve
type UIOptions struct {
	AutoRefresh          bool          `help:"Start with auto-refresh enabled"`
	MaxNotifications     int           `help:"Maximum notifications shown at once" default:"5"`
	NotificationDuration time.Duration `help:"How long notifications stay visible" default:"3s"`
	PageSize             int           `help:"Records per page (10, 20, 50 or 100)" default:"10"`
	RefreshInterval      time.Duration `help:"Auto-refresh interval (5s, 10s, 30s or 60s)" default:"30s"`
}

// resolve applies settings to the options still at their defaults and validates the result
func (o *UIOptions) resolve(settings *config.Settings) (ui.Options, error) {
	if settings != nil {
		if !o.AutoRefresh && settings.AutoRefresh != nil {
			o.AutoRefresh = *settings.AutoRefresh
		}
		if o.MaxNotifications == config.DefaultMaxNotifications && settings.MaxNotifications != nil {
			o.MaxNotifications = *settings.MaxNotifications
		}
		if o.NotificationDuration == config.DefaultNotificationDuration && settings.NotificationDurationMs != nil {
			o.NotificationDuration = time.Duration(*settings.NotificationDurationMs) * time.Millisecond
		}
		if o.PageSize == domain.DefaultPageSize && settings.PageSize != nil {
			o.PageSize = *settings.PageSize
		}
		if o.RefreshInterval == domain.DefaultRefreshInterval && settings.RefreshIntervalSeconds != nil {
			o.RefreshInterval = time.Duration(*settings.RefreshIntervalSeconds) * time.Second
		}
	}

	if !domain.ValidRefreshInterval(o.RefreshInterval) {
		return ui.Options{}, fmt.Errorf("refresh interval must be one of 5s, 10s, 30s or 60s, got %s", o.RefreshInterval)
	}
	if !domain.ValidPageSize(o.PageSize) {
		return ui.Options{}, fmt.Errorf("page size must be one of %v, got %d", domain.PageSizes, o.PageSize)
	}

	return ui.Options{
		AutoRefresh:          o.AutoRefresh,
		MaxNotifications:     o.MaxNotifications,
		NotificationDuration: o.NotificationDuration,
		PageSize:             o.PageSize,
		RefreshInterval:      o.RefreshInterval,
	}, nil
}

// RunCmd starts the TUI application
type RunCmd struct {
	UIOptions
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	opts, err := r.resolve(cli.settings)
	if err != nil {
		return err
	}
	opts.RequestTimeout = cli.Timeout
	opts.ShowVersion = cli.Debug
	opts.Clipboard = ui.SystemClipboard{Fallback: ui.NewTerminalClipboard(os.Stdout, os.Environ())}

	container, err := cli.Services()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if cli.MetricsAddr != "" {
		g.Go(func() error {
			return container.Metrics.Serve(ctx, cli.MetricsAddr)
		})
	}

	g.Go(func() error {
		defer cancel()
		logging.Logger.Info("Starting TUI program")
		p := tea.NewProgram(container.NewModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			logging.Logger.Error("TUI program error", "error", err)
			return fmt.Errorf("error running program: %w", err)
		}
		logging.Logger.Info("TUI program exited normally")
		return nil
	})

	return g.Wait()
}
