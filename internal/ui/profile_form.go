package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/ports"
	"github.com/lumina-ai/lumina-console/internal/theme"
)

// ProfileForm edits the operator's username and password. It never touches the
// session; the new username shows up at the next login.
type ProfileForm struct {
	Cancelled  bool
	confirm    string
	err        error
	form       *huh.Form
	profiles   ports.ProfileUpdater
	submitting bool
	timeout    time.Duration
	update     domain.ProfileUpdate
	width      int
}

// NewProfileForm creates a profile form pre-filled with the current principal
func NewProfileForm(profiles ports.ProfileUpdater, principal string, timeout time.Duration) *ProfileForm {
	pf := &ProfileForm{
		profiles: profiles,
		timeout:  timeout,
		update:   domain.ProfileUpdate{Username: principal},
	}
	pf.form = pf.buildForm()
	return pf
}

func (pf *ProfileForm) buildForm() *huh.Form {
	pf.confirm = ""
	pf.update.OriginalPassword = ""
	pf.update.Password = ""
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&pf.update.Username).
				Validate(required("username")),
			huh.NewInput().
				Title("Current password").
				Description("Required when changing the password").
				EchoMode(huh.EchoModePassword).
				Value(&pf.update.OriginalPassword),
			huh.NewInput().
				Title("New password").
				Description("Leave empty to keep the current one").
				EchoMode(huh.EchoModePassword).
				Value(&pf.update.Password),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&pf.confirm).
				Validate(func(s string) error {
					if s != pf.update.Password {
						return errors.New("passwords do not match")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCharm())
}

// Fail shows err and lets the operator edit again
func (pf *ProfileForm) Fail(err error) tea.Cmd {
	pf.err = err
	pf.submitting = false
	pf.form = pf.buildForm()
	return pf.form.Init()
}

func (pf *ProfileForm) Init() tea.Cmd {
	return pf.form.Init()
}

func (pf *ProfileForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pf.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" && !pf.submitting {
			pf.Cancelled = true
			return pf, nil
		}
	}
	if pf.submitting {
		return pf, nil
	}

	form, cmd := pf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		pf.form = f
	}

	switch pf.form.State {
	case huh.StateAborted:
		pf.Cancelled = true
		return pf, nil
	case huh.StateCompleted:
		pf.submitting = true
		pf.err = nil
		return pf, pf.submit()
	}
	return pf, cmd
}

func (pf *ProfileForm) submit() tea.Cmd {
	update := pf.update
	update.Username = strings.TrimSpace(update.Username)
	profiles := pf.profiles
	timeout := pf.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := profiles.UpdateProfile(ctx, update)
		return profileSavedMsg{err: err, username: update.Username}
	}
}

func (pf *ProfileForm) View() string {
	if pf.submitting {
		return theme.MutedStyle.Render("Saving profile...")
	}
	view := pf.form.View()
	if pf.err != nil {
		view = lipgloss.JoinVertical(lipgloss.Left,
			theme.ErrorStyle.Render(formatErrorForDisplay(pf.err, max(pf.width-4, 40))),
			"",
			view,
		)
	}
	return view + "\n" + theme.MutedStyle.Render("esc to cancel")
}
