package fakegateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumina-ai/lumina-console/internal/logging"
)

// Defaults for a fake gateway started without options
const (
	DefaultPassword = "admin123"
	DefaultUsername = "admin"
	defaultLogCount = 57
	defaultTokenTTL = 24 * time.Hour
)

// RecordedRequest is what the fake gateway remembers about each call
type RecordedRequest struct {
	Authorization string
	Method        string
	Path          string
}

// Server is an in-memory gateway implementing the admin endpoints the console uses
type Server struct {
	latency  time.Duration
	logCount int
	now      func() time.Time
	seed     uint64
	secret   []byte
	tokenTTL time.Duration

	mu           sync.Mutex
	failuresLeft int
	failStatus   int
	logs         []logEntry
	recorded     []RecordedRequest
	revoked      map[string]bool
	users        map[string][]byte

	router *mux.Router
}

// Option configures a Server
type Option func(*Server)

// WithUser adds an account
func WithUser(username, password string) Option {
	return func(s *Server) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			panic(fmt.Sprintf("bcrypt: %v", err))
		}
		s.users[username] = hash
	}
}

// WithLogCount sets how many request logs are generated
func WithLogCount(n int) Option {
	return func(s *Server) { s.logCount = n }
}

// WithSeed makes generated logs reproducible
func WithSeed(seed uint64) Option {
	return func(s *Server) { s.seed = seed }
}

// WithLatency delays every response
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// WithTokenTTL sets the lifetime of issued tokens
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.tokenTTL = d }
}

// New creates a fake gateway. Without WithUser it accepts admin/admin123.
func New(opts ...Option) *Server {
	s := &Server{
		logCount: defaultLogCount,
		now:      time.Now,
		revoked:  make(map[string]bool),
		secret:   []byte(uuid.NewString()),
		seed:     42,
		tokenTTL: defaultTokenTTL,
		users:    make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.users) == 0 {
		WithUser(DefaultUsername, DefaultPassword)(s)
	}
	s.logs = generateLogs(s.logCount, s.seed, s.now())
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler rooted at /api/v1
func (s *Server) Handler() http.Handler {
	return s.router
}

// FailNext makes the next n requests answer with a bare HTTP status and no envelope
func (s *Server) FailNext(n, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failuresLeft = n
	s.failStatus = status
}

// Requests returns a copy of every request received so far
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.recorded...)
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.recordMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.authMiddleware)
	authed.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	authed.HandleFunc("/request-logs/page", s.handlePage).Methods(http.MethodGet)
	authed.HandleFunc("/request-logs/{id}", s.handleDetail).Methods(http.MethodGet)
	authed.HandleFunc("/user/profile", s.handleProfile).Methods(http.MethodPut)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusNotFound, http.StatusNotFound, "not found", nil)
	})
	return r
}

func (s *Server) recordMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.recorded = append(s.recorded, RecordedRequest{
			Authorization: r.Header.Get("Authorization"),
			Method:        r.Method,
			Path:          r.URL.Path,
		})
		fail := s.failuresLeft > 0
		status := s.failStatus
		if fail {
			s.failuresLeft--
		}
		s.mu.Unlock()

		if s.latency > 0 {
			select {
			case <-time.After(s.latency):
			case <-r.Context().Done():
				return
			}
		}

		if fail {
			http.Error(w, http.StatusText(status), status)
			return
		}

		logging.Logger.Debug("Fake gateway request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

type ctxKey struct{}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeEnvelope(w, http.StatusUnauthorized, http.StatusUnauthorized, "missing credential", nil)
			return
		}

		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
		if err != nil {
			writeEnvelope(w, http.StatusUnauthorized, http.StatusUnauthorized, "invalid credential", nil)
			return
		}

		s.mu.Lock()
		revoked := s.revoked[claims.ID]
		_, exists := s.users[claims.Subject]
		s.mu.Unlock()
		if revoked || !exists {
			writeEnvelope(w, http.StatusUnauthorized, http.StatusUnauthorized, "credential revoked", nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r, claims)))
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeEnvelope(w, http.StatusOK, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	s.mu.Lock()
	hash, ok := s.users[body.Username]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(body.Password)) != nil {
		writeEnvelope(w, http.StatusOK, http.StatusUnauthorized, "Invalid username or password", nil)
		return
	}

	token, err := s.issueToken(body.Username)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	writeEnvelope(w, http.StatusOK, http.StatusOK, "success", map[string]any{
		"expiresIn": int64(s.tokenTTL / time.Second),
		"token":     token,
		"username":  body.Username,
	})
}

func (s *Server) issueToken(username string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    "lumina-fake-gateway",
		Subject:   username,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	s.mu.Lock()
	s.revoked[claims.ID] = true
	s.mu.Unlock()
	writeEnvelope(w, http.StatusOK, http.StatusOK, "success", nil)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	current := queryInt(r, "current", 1)
	size := queryInt(r, "size", 10)
	if current < 1 || size < 1 {
		writeEnvelope(w, http.StatusOK, http.StatusBadRequest, "current and size must be positive", nil)
		return
	}

	s.mu.Lock()
	total := len(s.logs)
	start := min((current-1)*size, total)
	end := min(start+size, total)
	records := make([]logEntry, 0, end-start)
	for _, e := range s.logs[start:end] {
		records = append(records, e.summary())
	}
	s.mu.Unlock()

	writeEnvelope(w, http.StatusOK, http.StatusOK, "success", map[string]any{
		"current": current,
		"pages":   (total + size - 1) / size,
		"records": records,
		"size":    size,
		"total":   total,
	})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeEnvelope(w, http.StatusOK, http.StatusBadRequest, "invalid id", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.logs {
		if e.ID == id {
			writeEnvelope(w, http.StatusOK, http.StatusOK, "success", e)
			return
		}
	}
	writeEnvelope(w, http.StatusOK, http.StatusNotFound, "request log not found", nil)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OriginalPassword string `json:"originalPassword"`
		Password         string `json:"password"`
		Username         string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" {
		writeEnvelope(w, http.StatusOK, http.StatusBadRequest, "username is required", nil)
		return
	}

	current := claimsFrom(r).Subject

	s.mu.Lock()
	defer s.mu.Unlock()

	hash := s.users[current]
	if body.Password != "" {
		if bcrypt.CompareHashAndPassword(hash, []byte(body.OriginalPassword)) != nil {
			writeEnvelope(w, http.StatusOK, http.StatusBadRequest, "original password is incorrect", nil)
			return
		}
		newHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.MinCost)
		if err != nil {
			writeEnvelope(w, http.StatusOK, http.StatusInternalServerError, err.Error(), nil)
			return
		}
		hash = newHash
	}
	if body.Username != current {
		if _, taken := s.users[body.Username]; taken {
			writeEnvelope(w, http.StatusOK, http.StatusConflict, "username already taken", nil)
			return
		}
		delete(s.users, current)
	}
	s.users[body.Username] = hash

	writeEnvelope(w, http.StatusOK, http.StatusOK, "success", nil)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return v
}

func writeEnvelope(w http.ResponseWriter, httpStatus, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	err := json.NewEncoder(w).Encode(map[string]any{
		"code":    code,
		"data":    data,
		"message": message,
	})
	if err != nil {
		logging.Logger.Warn("Failed to write fake gateway response", "error", err)
	}
}
