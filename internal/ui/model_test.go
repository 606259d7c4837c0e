package ui

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lumina-ai/lumina-console/internal/domain"
	portsmocks "github.com/lumina-ai/lumina-console/internal/ports/mocks"
	"github.com/lumina-ai/lumina-console/internal/services"
)

type modelFixture struct {
	gateway  *portsmocks.MockGateway
	model    *Model
	sessions *services.SessionService
	store    *portsmocks.MockCredentialStore
}

func newModelFixture(t *testing.T, persisted domain.Credentials) *modelFixture {
	t.Helper()
	gateway := portsmocks.NewMockGateway(t)
	store := portsmocks.NewMockCredentialStore(t)
	store.EXPECT().Load(mock.Anything).Return(persisted, nil)

	sessions := services.NewSessionService(gateway, store, store, nil)
	_, err := sessions.Restore(context.Background())
	require.NoError(t, err)

	m := NewModel(sessions, gateway, gateway, nil, Options{PageSize: 10, RequestTimeout: time.Second})
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return &modelFixture{gateway: gateway, model: m, sessions: sessions, store: store}
}

// collect runs cmd and flattens batches. Only use it on commands that contain no timers.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliver feeds every message except spinner ticks back into the model
func deliver(m *Model, msgs []tea.Msg) {
	for _, msg := range msgs {
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		m.Update(msg)
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_StartsAtLoginWithoutSession(t *testing.T) {
	f := newModelFixture(t, domain.Credentials{})
	f.model.Init()

	assert.Equal(t, stateLogin, f.model.state)
	_, ok := f.model.dialogContent().(*LoginForm)
	assert.True(t, ok)
	assert.Contains(t, f.model.View(), "Sign in")
}

func TestModel_LoginFailureStaysOnForm(t *testing.T) {
	f := newModelFixture(t, domain.Credentials{})
	f.model.Init()

	f.model.Update(loginResultMsg{err: &domain.AuthError{Message: "Invalid username or password"}})

	assert.Equal(t, stateLogin, f.model.state)
	assert.Contains(t, f.model.View(), "Invalid username or password")
}

func TestModel_LoginSuccessMountsLogs(t *testing.T) {
	f := newModelFixture(t, domain.Credentials{})
	f.model.Init()

	f.model.Update(loginResultMsg{session: domain.Session{Credential: "tok", Principal: "admin"}})

	assert.Equal(t, stateLogs, f.model.state)
	assert.True(t, f.model.pager.Loading())
	require.Len(t, f.model.notifications.Active(), 1)
	assert.Equal(t, "Signed in as admin", f.model.notifications.Active()[0].Text)
}

func TestModel_LogsDetailAndLogout(t *testing.T) {
	f := newModelFixture(t, domain.Credentials{Credential: "tok", Principal: "admin"})
	m := f.model

	f.gateway.EXPECT().Page(mock.Anything, 1, 10).Return(domain.LogPage{
		Current: 1,
		Records: []domain.LogRecord{
			{ID: "1790000000000000001", RequestModel: "gpt-4o", Status: domain.LogStatusSuccess},
			{ID: "1790000000000000002", RequestModel: "claude", Status: domain.LogStatusFail},
		},
		Size:  10,
		Total: 2,
	}, nil)

	deliver(m, collect(m.Init()))
	require.Equal(t, stateLogs, m.state)
	assert.False(t, m.pager.Loading())
	assert.Contains(t, m.View(), "Showing 1 to 2 of 2 results")
	assert.Contains(t, m.View(), "page 1 / 1")

	// Open the highlighted record
	f.gateway.EXPECT().Detail(mock.Anything, "1790000000000000001").
		Return(domain.LogDetail{ID: "1790000000000000001", RequestContent: `{"model":"gpt-4o"}`}, nil)
	_, cmd := m.Update(keyPress("enter"))
	require.Equal(t, stateDetail, m.state)
	deliver(m, collect(cmd))
	assert.Equal(t, DetailLoaded, m.detail.Phase())
	assert.Contains(t, m.View(), "Request 1790000000000000001")

	m.Update(keyPress("esc"))
	assert.Equal(t, stateLogs, m.state)
	assert.False(t, m.detail.IsOpen())

	// Logging out clears the session even when the remote call fails
	f.gateway.EXPECT().Logout(mock.Anything).Return(context.DeadlineExceeded)
	f.store.EXPECT().Clear(mock.Anything).Return(nil)
	_, cmd = m.Update(keyPress("L"))
	deliver(m, collect(cmd))

	assert.False(t, f.sessions.Current().IsAuthenticated())
	assert.Equal(t, stateLogin, m.state)
	assert.False(t, m.pager.AutoRefresh().Enabled())
	assert.Empty(t, m.pager.Records())
}

func TestModel_OutOfRangePageKeysAreNoops(t *testing.T) {
	f := newModelFixture(t, domain.Credentials{Credential: "tok", Principal: "admin"})
	m := f.model

	f.gateway.EXPECT().Page(mock.Anything, 1, 10).Return(domain.LogPage{Current: 1, Size: 10, Total: 3,
		Records: []domain.LogRecord{{ID: "1"}, {ID: "2"}, {ID: "3"}}}, nil)
	deliver(m, collect(m.Init()))

	generation := m.pager.Generation()
	_, cmd := m.Update(keyPress("h"))
	assert.Nil(t, cmd)
	_, cmd = m.Update(keyPress("l"))
	assert.Nil(t, cmd)
	assert.Equal(t, generation, m.pager.Generation())
}

func TestModel_HelpOpensAndCloses(t *testing.T) {
	f := newModelFixture(t, domain.Credentials{Credential: "tok", Principal: "admin"})
	m := f.model
	m.Init()

	m.Update(keyPress("?"))
	require.Equal(t, stateHelp, m.state)
	assert.Contains(t, m.View(), "cycle refresh interval")

	m.Update(keyPress("esc"))
	assert.Equal(t, stateLogs, m.state)
}

// twoViewers mounts two models on one session, the way serve shares it across SSH viewers
func twoViewers(t *testing.T) (viewerA, viewerB *Model, f *modelFixture) {
	t.Helper()
	f = newModelFixture(t, domain.Credentials{Credential: "tok", Principal: "admin"})
	logs := services.NewLogService(f.gateway, f.sessions)
	f.gateway.EXPECT().Page(mock.Anything, 1, 10).Return(makePage(1, 10, 25, "p"), nil)

	viewerA = NewModel(f.sessions, logs, f.gateway, nil, Options{PageSize: 10, RequestTimeout: time.Second})
	viewerB = NewModel(f.sessions, logs, f.gateway, nil, Options{PageSize: 10, RequestTimeout: time.Second})
	for _, m := range []*Model{viewerA, viewerB} {
		m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
		deliver(m, collect(m.Init()))
		require.Equal(t, stateLogs, m.state)
		require.Len(t, m.pager.Records(), 10)
	}

	f.gateway.EXPECT().Logout(mock.Anything).Return(nil)
	f.store.EXPECT().Clear(mock.Anything).Return(nil)
	_, cmd := viewerA.Update(keyPress("L"))
	deliver(viewerA, collect(cmd))
	require.Equal(t, stateLogin, viewerA.state)
	require.False(t, f.sessions.Current().IsAuthenticated())
	return viewerA, viewerB, f
}

func TestModel_SharedLogoutReturnsOtherViewerToLogin(t *testing.T) {
	_, viewerB, _ := twoViewers(t)
	require.Equal(t, stateLogs, viewerB.state, "nothing has told viewer B yet")

	_, cmd := viewerB.Update(keyPress("r"))
	deliver(viewerB, collect(cmd))

	assert.Equal(t, stateLogin, viewerB.state)
	assert.Empty(t, viewerB.pager.Records())
	assert.False(t, viewerB.pager.Loading())
	assert.False(t, viewerB.pager.AutoRefresh().Enabled())
	_, ok := viewerB.dialogContent().(*LoginForm)
	assert.True(t, ok)

	active := viewerB.notifications.Active()
	require.Len(t, active, 1)
	assert.Equal(t, domain.NotificationWarning, active[0].Kind)
	assert.Contains(t, active[0].Text, "session has ended")
}

func TestModel_SharedLogoutClosesOtherViewersDetail(t *testing.T) {
	_, viewerB, _ := twoViewers(t)

	_, cmd := viewerB.Update(keyPress("enter"))
	require.Equal(t, stateDetail, viewerB.state)
	deliver(viewerB, collect(cmd))

	assert.Equal(t, stateLogin, viewerB.state)
	assert.False(t, viewerB.detail.IsOpen())
	assert.Empty(t, viewerB.pager.Records())
}

func TestModel_StaleUnauthenticatedCompletionIsIgnored(t *testing.T) {
	f := newModelFixture(t, domain.Credentials{Credential: "tok", Principal: "admin"})
	m := f.model
	f.gateway.EXPECT().Page(mock.Anything, 1, 10).Return(makePage(1, 10, 25, "p"), nil)
	deliver(m, collect(m.Init()))

	m.Update(logPageLoadedMsg{err: domain.ErrNotAuthenticated, generation: m.pager.Generation() - 1, reqPage: 1, reqSize: 10})

	assert.Equal(t, stateLogs, m.state)
	assert.Len(t, m.pager.Records(), 10)
}
