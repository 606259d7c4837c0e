package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/lumina-ai/lumina-console/internal/domain"
)

// ProfileCmd manages the operator profile
type ProfileCmd struct {
	Update ProfileUpdateCmd `cmd:"update" help:"Change username or password"`
}

// ProfileUpdateCmd changes the operator's username and/or password.
// The local session keeps its principal until the next login.
type ProfileUpdateCmd struct {
	CurrentPassword string `help:"Current password (prompted when a new password is given)" env:"LUMINA_PASSWORD"`
	NewPassword     string `help:"New password" env:"LUMINA_NEW_PASSWORD"`
	Username        string `help:"New username (defaults to the current one)" short:"u"`
}

// Run executes the profile update command
func (p *ProfileUpdateCmd) Run(cli *CLI) error {
	container, err := cli.Services()
	if err != nil {
		return err
	}

	session := container.SessionService.Current()
	if !session.IsAuthenticated() {
		return domain.ErrNotAuthenticated
	}

	username := p.Username
	if username == "" {
		username = session.Principal
	}
	if p.NewPassword != "" && p.CurrentPassword == "" {
		if err := p.promptCurrentPassword(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cli.Timeout)
	defer cancel()

	err = container.ProfileService.UpdateProfile(ctx, domain.ProfileUpdate{
		OriginalPassword: p.CurrentPassword,
		Password:         p.NewPassword,
		Username:         username,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out(), "Profile updated for %s\n", username)
	if username != session.Principal {
		fmt.Fprintln(cli.out(), "Log in again to use the new username")
	}
	return nil
}

func (p *ProfileUpdateCmd) promptCurrentPassword() error {
	err := huh.NewInput().
		Title("Current password").
		EchoMode(huh.EchoModePassword).
		Value(&p.CurrentPassword).
		Validate(notBlank("current password")).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return errors.New("profile update cancelled")
	}
	return err
}
