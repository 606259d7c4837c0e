package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lumina-ai/lumina-console/internal/fakegateway"
	"github.com/lumina-ai/lumina-console/internal/logging"
)

// FakeGatewayCmd runs an in-memory gateway
type FakeGatewayCmd struct {
	Addr     string        `help:"Listen address" default:":8080"`
	Latency  time.Duration `help:"Delay added to every response" default:"0s"`
	Logs     int           `help:"Number of generated request logs" default:"57"`
	Password string        `help:"Accepted password" default:"admin123"`
	Seed     uint64        `help:"Seed for generated request logs" default:"42"`
	TokenTTL time.Duration `help:"Lifetime of issued tokens" default:"24h"`
	Username string        `help:"Accepted username" default:"admin"`
}

// Run serves the fake gateway until interrupted
func (f *FakeGatewayCmd) Run(cli *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", f.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", f.Addr, err)
	}

	fmt.Fprintf(cli.out(), "Fake gateway listening on http://%s/api/v1 (user %s)\n", listener.Addr(), f.Username)
	return f.serve(ctx, listener)
}

func (f *FakeGatewayCmd) serve(ctx context.Context, listener net.Listener) error {
	gw := fakegateway.New(
		fakegateway.WithUser(f.Username, f.Password),
		fakegateway.WithLogCount(f.Logs),
		fakegateway.WithSeed(f.Seed),
		fakegateway.WithLatency(f.Latency),
		fakegateway.WithTokenTTL(f.TokenTTL),
	)
	srv := &http.Server{Handler: gw.Handler(), ReadHeaderTimeout: 5 * time.Second}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Logger.Info("Fake gateway started", "addr", listener.Addr().String(), "logs", f.Logs)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logging.Logger.Info("Stopping fake gateway")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
