package integration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-ai/lumina-console/internal/fakegateway"
	"github.com/lumina-ai/lumina-console/test/integration/harness"
)

type logPage struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Records []struct {
		ID           string `json:"id"`
		RequestModel string `json:"request_model"`
		Status       string `json:"status"`
	} `json:"records"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

func TestLogsList(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, result harness.CommandResult)
	}{
		{
			name: "table defaults to first page of ten",
			args: []string{"logs", "list"},
			validate: func(t *testing.T, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "REQUEST MODEL")
				harness.AssertStdoutContains(t, result, "Showing 1 to 10 of 57 results (page 1 of 6)")
			},
		},
		{
			name: "json last page",
			args: []string{"logs", "list", "--page", "3", "--size", "20", "--format", "json"},
			validate: func(t *testing.T, result harness.CommandResult) {
				var page logPage
				harness.AssertValidJSON(t, result, &page)
				assert.Equal(t, 3, page.Current)
				assert.Equal(t, 3, page.Pages)
				assert.Equal(t, 57, page.Total)
				assert.Len(t, page.Records, 17)
			},
		},
		{
			name: "page past the end is empty",
			args: []string{"logs", "list", "--page", "99"},
			validate: func(t *testing.T, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "No request logs found.")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := harness.NewTestEnvironment(t)
			env.Login(t)

			result := harness.RunCommand(t, env, tt.args...)
			harness.AssertSuccess(t, result)
			tt.validate(t, result)
		})
	}
}

func TestLogsList_RequiresLogin(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "logs", "list")
	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "not authenticated")

	// No request may reach the gateway without a session
	assert.Empty(t, env.Gateway.Requests())
}

func TestLogsList_RetriesTransientFailures(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.Login(t)
	env.Gateway.FailNext(1, http.StatusServiceUnavailable)

	result := harness.RunCommand(t, env, "logs", "list", "--retries", "2")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Showing 1 to 10 of 57 results")
}

func TestLogsShow(t *testing.T) {
	env := harness.NewTestEnvironment(t, fakegateway.WithLogCount(5))
	env.Login(t)

	var page logPage
	list := harness.RunCommand(t, env, "logs", "list", "--format", "json")
	harness.AssertSuccess(t, list)
	harness.AssertValidJSON(t, list, &page)
	require.NotEmpty(t, page.Records)
	first := page.Records[0]

	result := harness.RunCommand(t, env, "logs", "show", first.ID)
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "ID: "+first.ID)
	harness.AssertStdoutContains(t, result, "Status: "+first.Status)

	var detail struct {
		ID           string `json:"id"`
		RequestModel string `json:"request_model"`
	}
	result = harness.RunCommand(t, env, "logs", "show", first.ID, "--format", "json")
	harness.AssertSuccess(t, result)
	harness.AssertValidJSON(t, result, &detail)
	assert.Equal(t, first.ID, detail.ID)
	assert.Equal(t, first.RequestModel, detail.RequestModel)

	result = harness.RunCommand(t, env, "logs", "show", "999999")
	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "request log not found")
}
