package harness

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lumina-ai/lumina-console/internal/fakegateway"
)

// TestEnvironment is an isolated LUMINA_HOME plus a fake gateway serving it
type TestEnvironment struct {
	Gateway    *fakegateway.Server
	GatewayURL string
	LuminaHome string

	extraEnv map[string]string
}

// NewTestEnvironment creates a temp LUMINA_HOME and starts a fake gateway with opts.
// Both are cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB, opts ...fakegateway.Option) *TestEnvironment {
	tb.Helper()

	gw := fakegateway.New(opts...)
	srv := httptest.NewServer(gw.Handler())
	tb.Cleanup(srv.Close)

	return &TestEnvironment{
		Gateway:    gw,
		GatewayURL: srv.URL + "/api/v1",
		LuminaHome: tb.TempDir(),
		extraEnv:   make(map[string]string),
	}
}

// Environ returns environment variables configured for test isolation.
// Every inherited LUMINA_* variable is dropped, then:
//   - LUMINA_HOME is the temp directory
//   - LUMINA_BASE_URL is the fake gateway
//   - LUMINA_DEBUG is empty (no log files)
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+3+len(e.extraEnv))
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "LUMINA_") {
			continue
		}
		if _, overridden := e.extraEnv[key]; overridden {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"LUMINA_HOME="+e.LuminaHome,
		"LUMINA_BASE_URL="+e.GatewayURL,
		"LUMINA_DEBUG=",
	)
	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}
	return env
}

// DBPath returns the path to the credential database.
func (e *TestEnvironment) DBPath() string {
	return filepath.Join(e.LuminaHome, "state.db")
}

// SettingsPath returns where lumina looks for settings.json.
func (e *TestEnvironment) SettingsPath() string {
	return filepath.Join(e.LuminaHome, "settings.json")
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	e.extraEnv[key] = value
}

// Login logs the environment in as the fake gateway's default operator
func (e *TestEnvironment) Login(tb testing.TB) {
	tb.Helper()
	result := RunCommand(tb, e, "login", "-u", fakegateway.DefaultUsername, "--password", fakegateway.DefaultPassword)
	AssertSuccess(tb, result)
}
