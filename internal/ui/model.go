package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/logging"
	"github.com/lumina-ai/lumina-console/internal/metrics"
	"github.com/lumina-ai/lumina-console/internal/ports"
	"github.com/lumina-ai/lumina-console/internal/services"
	"github.com/lumina-ai/lumina-console/internal/theme"
)

type uiState int

const (
	stateLogin uiState = iota
	stateLogs
	stateDetail
	stateHelp
	stateProfile
)

// Options configure a Model. Zero values fall back to defaults.
type Options struct {
	AutoRefresh          bool
	Clipboard            Clipboard // receives copies from the request detail; nil disables copying
	MaxNotifications     int
	NotificationDuration time.Duration
	PageSize             int
	RefreshInterval      time.Duration
	RequestTimeout       time.Duration
	ShowVersion          bool // show build info in dialog headers
}

// Model is the root bubbletea model of the console. One Model exists per program;
// programs served over SSH share the SessionService but nothing else.
type Model struct {
	detail        *DetailLoader
	detailView    *DetailView
	dialog        *Dialog // login, profile or help, depending on state
	height        int
	keys          KeyMap
	logs          *LogsView
	notifications *NotificationCenter
	opts          Options
	pager         *LogPager
	principal     string // operator the logs view was mounted for
	profiles      ports.ProfileUpdater
	sessions      *services.SessionService
	spinner       spinner.Model
	spinning      bool
	state         uiState
	width         int
}

// NewModel creates the console model. reader and profiles are normally the
// session-aware services; recorder may be nil.
func NewModel(
	sessions *services.SessionService,
	reader ports.LogReader,
	profiles ports.ProfileUpdater,
	recorder *metrics.Recorder,
	opts Options,
) *Model {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}

	m := &Model{
		keys:     NewKeyMap(),
		opts:     opts,
		profiles: profiles,
		sessions: sessions,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.SpinnerStyle)),
	}
	m.notifications = NewNotificationCenter(opts.MaxNotifications, opts.NotificationDuration, recorder)
	m.pager = NewLogPager(reader, m.notifications, NewAutoRefresh(opts.RefreshInterval), opts.PageSize, opts.RequestTimeout, recorder)
	m.detail = NewDetailLoader(reader, opts.RequestTimeout, recorder)
	spinnerView := func() string { return m.spinner.View() }
	m.logs = NewLogsView(m.pager, &m.keys, spinnerView)
	m.detailView = NewDetailView(m.detail, &m.keys, spinnerView, opts.Clipboard)
	return m
}

// Init shows the logs when a session was restored and the login form otherwise
func (m *Model) Init() tea.Cmd {
	session := m.sessions.Current()
	if !session.IsAuthenticated() {
		return m.showLogin("")
	}

	cmds := []tea.Cmd{m.enterLogs()}
	if session.LooksExpired(time.Now()) {
		cmds = append(cmds, m.notifications.Warning("Your session may have expired, log in again if requests fail"))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.logs.Sync()
	m.detailView.Sync()
	return m, tea.Batch(cmd, m.startSpinner())
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	if handled, cmd := m.notifications.Update(msg); handled {
		return cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logs.SetSize(msg.Width, msg.Height)
		m.detailView.SetSize(msg.Width, msg.Height)
		if m.dialog != nil {
			_, cmd := m.dialog.Update(msg)
			return cmd
		}
		return nil

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case logPageLoadedMsg:
		current := msg.generation == m.pager.Generation()
		_, cmd := m.pager.Update(msg)
		if current && errors.Is(msg.err, domain.ErrNotAuthenticated) {
			return m.sessionEnded()
		}
		return cmd

	case refreshTickMsg:
		_, cmd := m.pager.Update(msg)
		return cmd

	case detailLoadedMsg:
		current := msg.token == m.detail.token
		m.detail.Update(msg)
		if current && errors.Is(msg.err, domain.ErrNotAuthenticated) {
			return m.sessionEnded()
		}
		return nil

	case copyDoneMsg, copyFeedbackExpiredMsg:
		return m.detailView.Update(msg)

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case logoutDoneMsg:
		return tea.Batch(m.showLogin(msg.principal), m.notifications.Info("Signed out"))

	case profileSavedMsg:
		return m.handleProfileSaved(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Application.ForceQuit) {
			return m.quit()
		}
	}

	switch m.state {
	case stateLogin:
		return m.updateLogin(msg)
	case stateLogs:
		return m.updateLogs(msg)
	case stateDetail:
		return m.updateDetail(msg)
	case stateHelp:
		return m.updateHelp(msg)
	case stateProfile:
		return m.updateProfile(msg)
	}
	return nil
}

func (m *Model) busy() bool {
	if m.pager.Loading() || m.detail.Phase() == DetailLoading {
		return true
	}
	if form, ok := m.dialogContent().(*LoginForm); ok && form.Submitting() {
		return true
	}
	return false
}

// startSpinner starts one tick chain whenever something begins loading
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning || !m.busy() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) dialogContent() tea.Model {
	if m.dialog == nil {
		return nil
	}
	return m.dialog.Content()
}

// openDialog shows content and sizes it for the current terminal
func (m *Model) openDialog(state uiState, title string, content tea.Model) tea.Cmd {
	m.state = state
	m.dialog = NewDialog(title, content, m.opts.ShowVersion)
	initCmd := m.dialog.Init()
	_, sizeCmd := m.dialog.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	return tea.Batch(initCmd, sizeCmd)
}

func (m *Model) closeDialog() {
	m.dialog = nil
	m.state = stateLogs
}

func (m *Model) showLogin(username string) tea.Cmd {
	return m.openDialog(stateLogin, "Sign in", NewLoginForm(m.sessions, username, m.opts.RequestTimeout))
}

// enterLogs mounts the logs view with fresh page state
func (m *Model) enterLogs() tea.Cmd {
	m.dialog = nil
	m.state = stateLogs
	m.principal = m.sessions.Current().Principal
	return m.pager.Mount(m.opts.AutoRefresh)
}

func (m *Model) quit() tea.Cmd {
	m.pager.Teardown()
	m.detail.Close()
	return tea.Quit
}

func (m *Model) logout() tea.Cmd {
	m.pager.Teardown()
	m.detail.Close()
	m.dialog = nil
	m.state = stateLogin

	sessions := m.sessions
	return func() tea.Msg {
		previous := sessions.Current().Principal
		sessions.Logout(context.Background())
		return logoutDoneMsg{principal: previous}
	}
}

// sessionEnded returns to the login form after the shared session was cleared
// elsewhere, for example by another viewer logging out
func (m *Model) sessionEnded() tea.Cmd {
	if m.state == stateLogin {
		return nil
	}
	logging.Logger.Info("Session ended, returning to login", "principal", m.principal)
	m.pager.Teardown()
	m.detail.Close()
	return tea.Batch(
		m.showLogin(m.principal),
		m.notifications.Warning("Your session has ended, sign in again"),
	)
}

func (m *Model) handleLoginResult(msg loginResultMsg) tea.Cmd {
	form, ok := m.dialogContent().(*LoginForm)
	if m.state != stateLogin || !ok {
		return nil
	}
	if msg.err != nil {
		return form.Fail(msg.err)
	}
	return tea.Batch(
		m.enterLogs(),
		m.notifications.Success("Signed in as "+msg.session.Principal),
	)
}

func (m *Model) handleProfileSaved(msg profileSavedMsg) tea.Cmd {
	form, ok := m.dialogContent().(*ProfileForm)
	if m.state != stateProfile || !ok {
		return nil
	}
	if msg.err != nil {
		logging.Logger.Warn("Profile update failed", "error", msg.err)
		return form.Fail(msg.err)
	}
	m.closeDialog()
	return m.notifications.Success(fmt.Sprintf("Profile updated, sign in as %s next time", msg.username))
}

func (m *Model) updateLogin(msg tea.Msg) tea.Cmd {
	if m.dialog == nil {
		return nil
	}
	_, cmd := m.dialog.Update(msg)
	if form, ok := m.dialogContent().(*LoginForm); ok && form.Aborted() {
		return m.quit()
	}
	return cmd
}

func (m *Model) updateLogs(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	pager := m.pager
	auto := pager.AutoRefresh()
	switch {
	case key.Matches(keyMsg, m.keys.Application.Quit):
		return m.quit()

	case key.Matches(keyMsg, m.keys.Application.Help):
		return m.openDialog(stateHelp, "Keyboard shortcuts", NewHelpScreen(&m.keys))

	case key.Matches(keyMsg, m.keys.Navigation.Open):
		id := m.logs.SelectedID()
		if id == "" {
			return nil
		}
		m.state = stateDetail
		return m.detail.Open(id)

	case key.Matches(keyMsg, m.keys.Paging.Prev):
		return pager.PrevPage()
	case key.Matches(keyMsg, m.keys.Paging.Next):
		return pager.NextPage()
	case key.Matches(keyMsg, m.keys.Paging.First):
		return pager.FirstPage()
	case key.Matches(keyMsg, m.keys.Paging.Last):
		return pager.LastPage()
	case key.Matches(keyMsg, m.keys.Paging.CyclePageSize):
		return pager.CyclePageSize()

	case key.Matches(keyMsg, m.keys.Actions.Refresh):
		return pager.ManualRefresh()

	case key.Matches(keyMsg, m.keys.Actions.ToggleAutoRefresh):
		enabled := !auto.Enabled()
		text := "Auto-refresh off"
		if enabled {
			text = fmt.Sprintf("Auto-refresh every %s", auto.Interval())
		}
		return tea.Batch(auto.SetEnabled(enabled), m.notifications.Info(text))

	case key.Matches(keyMsg, m.keys.Actions.CycleInterval):
		cmd, err := auto.SetInterval(domain.NextRefreshInterval(auto.Interval()))
		if err != nil {
			return m.notifications.Error(err.Error())
		}
		return tea.Batch(cmd, m.notifications.Info(fmt.Sprintf("Refresh interval %s", auto.Interval())))

	case key.Matches(keyMsg, m.keys.Actions.Profile):
		principal := m.sessions.Current().Principal
		return m.openDialog(stateProfile, "Edit profile", NewProfileForm(m.profiles, principal, m.opts.RequestTimeout))

	case key.Matches(keyMsg, m.keys.Actions.Logout):
		return m.logout()
	}

	return m.logs.Update(keyMsg)
}

func (m *Model) updateDetail(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, m.keys.Navigation.Close, m.keys.Application.Quit) {
			m.detail.Close()
			m.state = stateLogs
			return nil
		}
	}
	return m.detailView.Update(msg)
}

func (m *Model) updateHelp(msg tea.Msg) tea.Cmd {
	if m.dialog == nil {
		m.state = stateLogs
		return nil
	}
	_, cmd := m.dialog.Update(msg)
	if screen, ok := m.dialogContent().(*HelpScreen); ok && screen.Completed {
		m.closeDialog()
		return nil
	}
	return cmd
}

func (m *Model) updateProfile(msg tea.Msg) tea.Cmd {
	if m.dialog == nil {
		m.state = stateLogs
		return nil
	}
	_, cmd := m.dialog.Update(msg)
	if form, ok := m.dialogContent().(*ProfileForm); ok && form.Cancelled {
		m.closeDialog()
		return nil
	}
	return cmd
}

// View implements tea.Model
func (m *Model) View() string {
	var view string
	switch m.state {
	case stateLogs:
		view = m.logs.View(m.sessions.Current().Principal)
	case stateDetail:
		view = compositeOverlay(m.logs.View(m.sessions.Current().Principal), m.detailView.View(), m.width, m.height)
	default:
		view = theme.MutedStyle.Render("Signing out...")
		if m.dialog != nil {
			view = m.dialog.View()
		}
	}
	return cornerOverlay(view, m.notifications.View(m.width), m.width)
}
