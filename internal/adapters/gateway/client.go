package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/logging"
	"github.com/lumina-ai/lumina-console/internal/ports"
	"github.com/lumina-ai/lumina-console/internal/version"
)

const (
	codeOK = 200

	// maxBodySize bounds how much of a response is read; detail bodies carry full prompts
	maxBodySize = 16 << 20
)

// Client talks to the gateway's admin API. Every response is decoded from its
// {code, message, data} envelope into domain types here and nowhere else.
type Client struct {
	baseURL     *url.URL
	credentials ports.CredentialSource
	httpClient  *http.Client
	newBackOff  func() backoff.BackOff
	retries     int
}

// Verify interface compliance at compile time
var _ ports.Gateway = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRetries sets how many times idempotent GETs are retried on transport failure
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

// WithBackOff overrides the retry schedule
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(c *Client) { c.newBackOff = newBackOff }
}

// NewClient creates a gateway client. credentials may be nil for anonymous use.
func NewClient(baseURL string, credentials ports.CredentialSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid gateway url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid gateway url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:     u,
		credentials: credentials,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxElapsedTime = 10 * time.Second
			return b
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the gateway base url
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Login exchanges username and password for a credential. No bearer header is
// sent even when a stale credential exists, and the call is never retried.
func (c *Client) Login(ctx context.Context, username, password string) (domain.LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, request{
		body:     loginRequest{Username: username, Password: password},
		method:   http.MethodPost,
		path:     "/auth/login",
		skipAuth: true,
	}, &resp)
	if err != nil {
		return domain.LoginResult{}, err
	}
	if resp.Token == "" {
		return domain.LoginResult{}, errors.New("login response carried no token")
	}
	if resp.Username == "" {
		resp.Username = username
	}
	return domain.LoginResult{ExpiresIn: resp.ExpiresIn, Token: resp.Token, Username: resp.Username}, nil
}

// Logout tells the gateway to invalidate the current credential
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/logout"}, nil)
}

// Page fetches one page of request logs
func (c *Client) Page(ctx context.Context, page, size int) (domain.LogPage, error) {
	query := url.Values{}
	query.Set("current", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var dto logPageDTO
	if err := c.get(ctx, "/request-logs/page", query, &dto); err != nil {
		return domain.LogPage{}, err
	}
	return pageToDomain(dto), nil
}

// Detail fetches a single request log
func (c *Client) Detail(ctx context.Context, id string) (domain.LogDetail, error) {
	var dto logDetailDTO
	if err := c.get(ctx, "/request-logs/"+url.PathEscape(id), nil, &dto); err != nil {
		return domain.LogDetail{}, err
	}
	if dto.ID == "" {
		dto.ID = flexID(id)
	}
	return detailToDomain(dto), nil
}

// UpdateProfile changes the operator's username and optionally password
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) error {
	return c.do(ctx, request{
		body: profileRequest{
			OriginalPassword: update.OriginalPassword,
			Password:         update.Password,
			Username:         update.Username,
		},
		method: http.MethodPut,
		path:   "/user/profile",
	}, nil)
}

type request struct {
	body     any
	method   string
	path     string
	query    url.Values
	skipAuth bool
}

// get retries transport failures and 5xx responses with exponential backoff.
// Envelope errors are final.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req := request{method: http.MethodGet, path: path, query: query}
	if c.retries <= 0 {
		return c.do(ctx, req, out)
	}

	attempt := 0
	operation := func() error {
		attempt++
		err := c.do(ctx, req, out)
		if err == nil || !retryable(ctx, err) {
			if err != nil {
				return backoff.Permanent(err)
			}
			return nil
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logging.Logger.Debug("Retrying gateway request",
			"path", path,
			"attempt", attempt,
			"wait", wait,
			"error", err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(c.retries)), ctx)
	return backoff.RetryNotify(operation, b, notify)
}

// statusError is an HTTP failure whose body was not an envelope
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("gateway responded %d %s", e.status, http.StatusText(e.status))
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.status >= 500 || se.status == http.StatusTooManyRequests
	}
	return true
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + r.path
	if r.query != nil {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !r.skipAuth && c.credentials != nil {
		if credential := c.credentials.Credential(); credential != "" {
			req.Header.Set("Authorization", "Bearer "+credential)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w", r.method, r.path, err)
	}

	logging.Logger.Debug("Gateway response",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Code == 0 {
		if resp.StatusCode >= 300 {
			return &statusError{status: resp.StatusCode}
		}
		return fmt.Errorf("%s %s: malformed response envelope", r.method, r.path)
	}

	if env.Code != codeOK {
		return &domain.APIError{Code: env.Code, Message: env.Message}
	}

	if out != nil && env.hasData() {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: failed to decode data: %w", r.method, r.path, err)
		}
	}
	return nil
}
