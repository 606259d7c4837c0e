package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumina-ai/lumina-console/internal/logging"
	"github.com/lumina-ai/lumina-console/internal/services"
	"github.com/lumina-ai/lumina-console/internal/theme"
)

// LoginForm collects credentials and submits them through the SessionService.
// A failed attempt rebuilds the form with the username kept and the error shown.
type LoginForm struct {
	err        error
	form       *huh.Form
	password   string
	sessions   *services.SessionService
	submitting bool
	timeout    time.Duration
	username   string
	width      int
}

// NewLoginForm creates a login form. username pre-fills the first field.
func NewLoginForm(sessions *services.SessionService, username string, timeout time.Duration) *LoginForm {
	lf := &LoginForm{
		sessions: sessions,
		timeout:  timeout,
		username: username,
	}
	lf.form = lf.buildForm()
	return lf
}

func (lf *LoginForm) buildForm() *huh.Form {
	lf.password = ""
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&lf.username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&lf.password).
				Validate(required("password")),
		),
	).WithTheme(huh.ThemeCharm())
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// Submitting reports whether a login request is in flight
func (lf *LoginForm) Submitting() bool {
	return lf.submitting
}

// Aborted reports whether the operator quit the form
func (lf *LoginForm) Aborted() bool {
	return lf.form.State == huh.StateAborted
}

// Fail shows err and lets the operator try again
func (lf *LoginForm) Fail(err error) tea.Cmd {
	lf.err = err
	lf.submitting = false
	lf.form = lf.buildForm()
	return lf.form.Init()
}

func (lf *LoginForm) Init() tea.Cmd {
	return lf.form.Init()
}

func (lf *LoginForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		lf.width = size.Width
	}
	if lf.submitting {
		return lf, nil
	}

	form, cmd := lf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		lf.form = f
	}

	if lf.form.State == huh.StateCompleted {
		lf.submitting = true
		lf.err = nil
		return lf, lf.submit()
	}
	return lf, cmd
}

// submit performs the login off the event loop
func (lf *LoginForm) submit() tea.Cmd {
	username := strings.TrimSpace(lf.username)
	password := lf.password
	sessions := lf.sessions
	timeout := lf.timeout

	logging.Logger.Debug("Submitting login", "username", username)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		session, err := sessions.Login(ctx, username, password)
		return loginResultMsg{err: err, session: session}
	}
}

func (lf *LoginForm) View() string {
	if lf.submitting {
		return theme.MutedStyle.Render("Signing in as " + lf.username + "...")
	}
	view := lf.form.View()
	if lf.err != nil {
		view = lipgloss.JoinVertical(lipgloss.Left,
			theme.ErrorStyle.Render(formatErrorForDisplay(lf.err, max(lf.width-4, 40))),
			"",
			view,
		)
	}
	return view
}
