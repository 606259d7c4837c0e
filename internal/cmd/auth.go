package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/lumina-ai/lumina-console/internal/domain"
)

// LoginCmd logs in to the gateway and stores the credential
type LoginCmd struct {
	Password string `help:"Password (prompted when omitted)" env:"LUMINA_PASSWORD"`
	Username string `help:"Username (prompted when omitted)" short:"u" env:"LUMINA_USERNAME"`
}

// Run executes the login command
func (l *LoginCmd) Run(cli *CLI) error {
	if err := l.prompt(); err != nil {
		return err
	}

	container, err := cli.Services()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cli.Timeout)
	defer cancel()

	session, err := container.SessionService.Login(ctx, l.Username, l.Password)
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out(), "Logged in as %s\n", session.Principal)
	if !session.ExpiresAt.IsZero() {
		fmt.Fprintf(cli.out(), "Session expires %s\n", session.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

// prompt asks for whatever the flags left out
func (l *LoginCmd) prompt() error {
	var fields []huh.Field
	if strings.TrimSpace(l.Username) == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&l.Username).
			Validate(notBlank("username")))
	}
	if l.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&l.Password).
			Validate(notBlank("password")))
	}
	if len(fields) == 0 {
		return nil
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("login cancelled")
		}
		return fmt.Errorf("failed to read credentials: %w", err)
	}
	l.Username = strings.TrimSpace(l.Username)
	return nil
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// LogoutCmd logs out and forgets the stored credential
type LogoutCmd struct{}

// Run executes the logout command
func (l *LogoutCmd) Run(cli *CLI) error {
	container, err := cli.Services()
	if err != nil {
		return err
	}

	current := container.SessionService.Current()
	if !current.IsAuthenticated() {
		fmt.Fprintln(cli.out(), "Not logged in")
		return nil
	}

	container.SessionService.Logout(context.Background())
	fmt.Fprintf(cli.out(), "Logged out %s\n", current.Principal)
	return nil
}

// WhoamiCmd shows the logged in operator
type WhoamiCmd struct{}

// Run executes the whoami command
func (w *WhoamiCmd) Run(cli *CLI) error {
	container, err := cli.Services()
	if err != nil {
		return err
	}

	session := container.SessionService.Current()
	if !session.IsAuthenticated() {
		return domain.ErrNotAuthenticated
	}

	fmt.Fprintf(cli.out(), "Principal: %s\n", session.Principal)
	fmt.Fprintf(cli.out(), "Gateway: %s\n", container.Gateway.BaseURL())
	switch {
	case session.ExpiresAt.IsZero():
		fmt.Fprintln(cli.out(), "Expires: unknown")
	case session.LooksExpired(time.Now()):
		fmt.Fprintf(cli.out(), "Expires: %s (expired)\n", session.ExpiresAt.Local().Format(time.RFC1123))
	default:
		fmt.Fprintf(cli.out(), "Expires: %s\n", session.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
