package fakegateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnvelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func call(t *testing.T, h http.Handler, method, path, token, body string) testEnvelope {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func login(t *testing.T, h http.Handler, username, password string) string {
	t.Helper()
	env := call(t, h, http.MethodPost, "/api/v1/auth/login", "", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, 200, env.Code, env.Message)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Token
}

func TestLogin(t *testing.T) {
	h := New().Handler()

	env := call(t, h, http.MethodPost, "/api/v1/auth/login", "", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, 401, env.Code)
	assert.Equal(t, "Invalid username or password", env.Message)

	token := login(t, h, DefaultUsername, DefaultPassword)
	assert.NotEmpty(t, token)
}

func TestAuthRequired(t *testing.T) {
	h := New().Handler()

	env := call(t, h, http.MethodGet, "/api/v1/request-logs/page", "", "")
	assert.Equal(t, 401, env.Code)

	env = call(t, h, http.MethodGet, "/api/v1/request-logs/page", "not-a-jwt", "")
	assert.Equal(t, 401, env.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	h := New().Handler()
	token := login(t, h, DefaultUsername, DefaultPassword)

	env := call(t, h, http.MethodPost, "/api/v1/auth/logout", token, "")
	require.Equal(t, 200, env.Code)

	env = call(t, h, http.MethodGet, "/api/v1/request-logs/page", token, "")
	assert.Equal(t, 401, env.Code)
}

func TestPagination(t *testing.T) {
	h := New(WithLogCount(25)).Handler()
	token := login(t, h, DefaultUsername, DefaultPassword)

	env := call(t, h, http.MethodGet, "/api/v1/request-logs/page?current=3&size=10", token, "")
	require.Equal(t, 200, env.Code)

	var page struct {
		Current int               `json:"current"`
		Pages   int               `json:"pages"`
		Records []json.RawMessage `json:"records"`
		Total   int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 3, page.Current)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 25, page.Total)
	assert.Len(t, page.Records, 5)
	assert.NotContains(t, string(page.Records[0]), "requestContent", "list omits bodies")
}

func TestDetail(t *testing.T) {
	srv := New(WithLogCount(3))
	h := srv.Handler()
	token := login(t, h, DefaultUsername, DefaultPassword)

	id := srv.logs[0].ID
	env := call(t, h, http.MethodGet, "/api/v1/request-logs/"+jsonNumber(id), token, "")
	require.Equal(t, 200, env.Code)
	assert.Contains(t, string(env.Data), "requestContent")

	env = call(t, h, http.MethodGet, "/api/v1/request-logs/1", token, "")
	assert.Equal(t, 404, env.Code)
}

func TestProfileUpdate(t *testing.T) {
	h := New().Handler()
	token := login(t, h, DefaultUsername, DefaultPassword)

	env := call(t, h, http.MethodPut, "/api/v1/user/profile", token,
		`{"username":"admin","password":"new","originalPassword":"wrong"}`)
	assert.Equal(t, 400, env.Code)

	env = call(t, h, http.MethodPut, "/api/v1/user/profile", token,
		`{"username":"admin","password":"new-secret","originalPassword":"admin123"}`)
	require.Equal(t, 200, env.Code)

	assert.NotEmpty(t, login(t, h, "admin", "new-secret"))
}

func TestFailNext(t *testing.T) {
	srv := New()
	h := srv.Handler()
	srv.FailNext(1, http.StatusServiceUnavailable)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	env := call(t, h, http.MethodPost, "/api/v1/auth/login", "", `{"username":"admin","password":"admin123"}`)
	assert.Equal(t, 200, env.Code)
	assert.Len(t, srv.Requests(), 2)
}

func jsonNumber(v int64) string {
	data, _ := json.Marshal(v)
	return string(data)
}
