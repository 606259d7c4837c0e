package integration_test

import (
	"testing"

	"github.com/lumina-ai/lumina-console/internal/fakegateway"
	"github.com/lumina-ai/lumina-console/test/integration/harness"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		env      map[string]string
		wantFail bool
		validate func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult)
	}{
		{
			name: "valid credentials",
			args: []string{"login", "-u", fakegateway.DefaultUsername, "--password", fakegateway.DefaultPassword},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "Logged in as admin")
				harness.AssertStdoutContains(t, result, "Session expires")
				harness.AssertStdoutContains(t, harness.RunCommand(t, env, "whoami"), "Principal: admin")
			},
		},
		{
			name:     "wrong password",
			args:     []string{"login", "-u", fakegateway.DefaultUsername, "--password", "nope"},
			wantFail: true,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStderrContains(t, result, "Error:")
				harness.AssertFailure(t, harness.RunCommand(t, env, "whoami"))
			},
		},
		{
			name: "credentials from environment",
			args: []string{"login"},
			env: map[string]string{
				"LUMINA_PASSWORD": fakegateway.DefaultPassword,
				"LUMINA_USERNAME": fakegateway.DefaultUsername,
			},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "Logged in as admin")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := harness.NewTestEnvironment(t)
			for k, v := range tt.env {
				env.SetEnv(k, v)
			}

			result := harness.RunCommand(t, env, tt.args...)
			if tt.wantFail {
				harness.AssertFailure(t, result)
			} else {
				harness.AssertSuccess(t, result)
			}
			tt.validate(t, env, result)
		})
	}
}

func TestLogout(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.Login(t)

	result := harness.RunCommand(t, env, "logout")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Logged out admin")

	// The gateway saw the revocation with the credential attached
	var sawLogout bool
	for _, req := range env.Gateway.Requests() {
		if req.Path == "/api/v1/auth/logout" && req.Authorization != "" {
			sawLogout = true
		}
	}
	if !sawLogout {
		t.Error("Expected an authenticated POST to /api/v1/auth/logout")
	}

	result = harness.RunCommand(t, env, "whoami")
	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "not authenticated")
}

func TestLogout_GatewayDown(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.Login(t)

	// Point at a closed port: the remote call fails but the local session still ends
	env.SetEnv("LUMINA_BASE_URL", "http://127.0.0.1:1/api/v1")
	result := harness.RunCommand(t, env, "logout")
	harness.AssertSuccess(t, result)

	harness.AssertFailure(t, harness.RunCommand(t, env, "whoami"))
}
