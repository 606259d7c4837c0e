package cmd

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-ai/lumina-console/internal/config"
	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/fakegateway"
)

type testEnv struct {
	baseURL string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("LUMINA_HOME", t.TempDir())

	fake := fakegateway.New(fakegateway.WithLogCount(23))
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	return &testEnv{baseURL: srv.URL + "/api/v1"}
}

// run parses and executes one lumina invocation against the fake gateway
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cli := CLI{stdout: &out}
	cli.SetSettings(&config.Settings{})
	parser, err := kong.New(&cli,
		kong.Name("lumina"),
		kong.Vars{"version": "test"},
		kong.Bind(&cli),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse(append(args, "--base-url", e.baseURL, "--retries", "0"))
	require.NoError(t, err)
	defer cli.Close()

	err = kctx.Run()
	return out.String(), err
}

func TestCommands_LoginListShowLogout(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "whoami")
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)

	out, err := env.run(t, "login", "-u", fakegateway.DefaultUsername, "--password", fakegateway.DefaultPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as admin")

	// The credential survives across invocations through the store
	out, err = env.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Principal: admin")
	assert.Contains(t, out, "Gateway: "+env.baseURL)

	out, err = env.run(t, "logs", "list", "--page", "3", "--size", "10", "--format", "json")
	require.NoError(t, err)
	var page logPageJSON
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 3, page.Current)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 23, page.Total)
	require.Len(t, page.Records, 3)

	out, err = env.run(t, "logs", "show", page.Records[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "ID: "+page.Records[0].ID)
	assert.Contains(t, out, "Request Model: "+page.Records[0].RequestModel)

	out, err = env.run(t, "logs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "REQUEST MODEL")
	assert.Contains(t, out, "Showing 1 to 10 of 23 results")

	out, err = env.run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out admin")

	_, err = env.run(t, "logs", "list")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	out, err = env.run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestCommands_LoginRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "login", "-u", "admin", "--password", "wrong")
	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)

	_, err = env.run(t, "whoami")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestCommands_ProfileUpdate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "profile", "update", "--new-password", "secret")
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, err = env.run(t, "login", "-u", fakegateway.DefaultUsername, "--password", fakegateway.DefaultPassword)
	require.NoError(t, err)

	out, err := env.run(t, "profile", "update", "--current-password", fakegateway.DefaultPassword, "--new-password", "s3cret!")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile updated for admin")

	// The new password is live on the gateway; the local session is untouched
	out, err = env.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Principal: admin")

	_, err = env.run(t, "logout")
	require.NoError(t, err)
	_, err = env.run(t, "login", "-u", fakegateway.DefaultUsername, "--password", "s3cret!")
	require.NoError(t, err)
}

func TestCommands_Version(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lumina")
}

func TestCommands_Settings(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "settings", "show", "--format", "json")
	require.NoError(t, err)
	var effective settingsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &effective))
	assert.Equal(t, env.baseURL, effective.BaseURL)
	assert.Equal(t, 0, effective.Retries)
	assert.Equal(t, config.GetDBPath(), effective.DBPath)

	out, err = env.run(t, "settings", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "toggle_auto_refresh")
	assert.Contains(t, out, "ctrl+c")
}
