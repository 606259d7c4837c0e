package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/lumina-ai/lumina-console/internal/config"
	"github.com/lumina-ai/lumina-console/internal/server"
	"github.com/lumina-ai/lumina-console/internal/ui"
)

// ServeCmd serves the console over SSH. Every viewer gets its own model on the
// shared session, so a login or logout in one terminal applies to all of them.
type ServeCmd struct {
	UIOptions

	Addr           string `help:"SSH listen address" default:":2222"`
	AuthorizedKeys string `help:"authorized_keys file listing the keys allowed to connect" default:"~/.ssh/authorized_keys" type:"path"`
	HostKey        string `help:"SSH host key path (created when missing)"`
}

// Run serves until interrupted
func (s *ServeCmd) Run(cli *CLI) error {
	opts, err := s.resolve(cli.settings)
	if err != nil {
		return err
	}
	opts.RequestTimeout = cli.Timeout
	opts.ShowVersion = cli.Debug

	container, err := cli.Services()
	if err != nil {
		return err
	}

	hostKey := s.HostKey
	if hostKey == "" {
		hostKey = config.GetHostKeyPath()
	}

	srv, err := server.NewServer(server.Config{
		Address:            s.Addr,
		AuthorizedKeysPath: config.ExpandPath(s.AuthorizedKeys),
		HostKeyPath:        config.ExpandPath(hostKey),
	}, func(terminal io.Writer, environ []string) tea.Model {
		viewer := opts
		viewer.Clipboard = ui.NewTerminalClipboard(terminal, environ)
		return container.NewModel(viewer)
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(ctx)
	})
	if cli.MetricsAddr != "" {
		g.Go(func() error {
			return container.Metrics.Serve(ctx, cli.MetricsAddr)
		})
	}
	return g.Wait()
}
