package auth

import (
	"context"
	"sync"
	"time"

	"github.com/fittrackapp/fittrack/internal/session"
	"github.com/fittrackapp/fittrack/internal/telemetry/metrics"
	"github.com/fittrackapp/fittrack/internal/telemetry/tracing"
	"github.com/fittrackapp/fittrack/internal/users"

	log "github.com/sirupsen/logrus"
)

type authAPI interface {
	Login(ctx context.Context, email, password string) (*users.User, string, error)
	Register(ctx context.Context, params RegisterParams) (*users.User, string, error)
}

var _ authAPI = (*Service)(nil)

type profileAPI interface {
	Profile(ctx context.Context) (*users.User, error)
}

var _ profileAPI = (*users.Service)(nil)

type credentials interface {
	Token() string
	Save(token string) error
	Clear() error
}

var _ credentials = (*session.Store)(nil)

// RestoreResult says what a session restore attempt found.
type RestoreResult int

const (
	// RestoreOK - a stored credential was found and the backend accepted it.
	RestoreOK RestoreResult = iota
	// RestoreNoCredential - nothing stored, nobody was logged in here.
	RestoreNoCredential
	// RestoreInvalid - a credential was stored but it is expired or the
	// backend rejected it; it has been cleared.
	RestoreInvalid
)

func (r RestoreResult) String() string {
	switch r {
	case RestoreOK:
		return "ok"
	case RestoreNoCredential:
		return "no-credential"
	case RestoreInvalid:
		return "invalid"
	}
	return "unknown"
}

// Store owns the authentication state of the client: the current user, the
// persisted credential, and the last auth error. All state changes go through
// confirmed backend round trips, except Logout which is purely local.
type Store struct {
	mu       sync.RWMutex
	service  authAPI
	profiles profileAPI
	session  credentials
	metrics  *metrics.Manager
	nowFunc  func() time.Time

	user          *users.User
	authenticated bool
	loading       bool
	lastErr       error
}

func NewStore(service authAPI, profiles profileAPI, sessionStore credentials, metricsManager *metrics.Manager) *Store {
	return &Store{
		service:  service,
		profiles: profiles,
		session:  sessionStore,
		metrics:  metricsManager,
		nowFunc:  time.Now,
	}
}

// Restore tries to resume the previous session from the stored credential.
// A failed restore never surfaces as an auth error, the client just starts
// logged out; the returned error is the underlying cause, for logging.
func (s *Store) Restore(ctx context.Context) (RestoreResult, error) {
	s.countAction("restore")

	token := s.session.Token()
	if token == "" {
		return RestoreNoCredential, nil
	}

	if session.TokenExpired(token, s.nowFunc()) {
		log.Debugf("stored credential expired, clearing it")
		if err := s.session.Clear(); err != nil {
			return RestoreInvalid, err
		}
		return RestoreInvalid, nil
	}

	s.setLoading(true)
	user, err := s.profiles.Profile(ctx)
	if err != nil {
		// the backend no longer accepts this credential
		if clearErr := s.session.Clear(); clearErr != nil {
			log.Errorf("failed to clear rejected credential: %s", clearErr)
		}
		s.mu.Lock()
		s.user = nil
		s.authenticated = false
		s.loading = false
		s.mu.Unlock()
		return RestoreInvalid, err
	}

	s.setSession(user)
	return RestoreOK, nil
}

// Login validates the input locally first; an invalid form never reaches the
// network. On backend confirmation the credential is persisted and the user
// becomes the current session.
func (s *Store) Login(ctx context.Context, email, password string) (_ *users.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.auth.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	s.countAction("login")

	if err := validateLogin(email, password); err != nil {
		s.setError(err)
		return nil, err
	}

	s.setLoading(true)
	user, token, err := s.service.Login(ctx, email, password)
	if err != nil {
		s.setError(err)
		return nil, err
	}

	if err := s.session.Save(token); err != nil {
		log.Errorf("failed to persist credential: %s", err)
	}

	s.setSession(user)
	return user, nil
}

// Register creates the account and, on confirmation, logs the new user in.
func (s *Store) Register(ctx context.Context, params RegisterParams, passwordConfirm string) (_ *users.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.auth.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	s.countAction("register")

	if err := validateRegistration(params, passwordConfirm); err != nil {
		s.setError(err)
		return nil, err
	}

	s.setLoading(true)
	user, token, err := s.service.Register(ctx, params)
	if err != nil {
		s.setError(err)
		return nil, err
	}

	if err := s.session.Save(token); err != nil {
		log.Errorf("failed to persist credential: %s", err)
	}

	s.setSession(user)
	return user, nil
}

// Logout drops the session locally, no backend round trip involved.
func (s *Store) Logout() error {
	s.countAction("logout")

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.loading = false
	s.lastErr = nil
	s.mu.Unlock()

	return s.session.Clear()
}

// UpdateUser replaces the cached user after a confirmed profile change.
func (s *Store) UpdateUser(user *users.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated {
		return
	}
	userCopy := *user
	s.user = &userCopy
}

// User returns a copy of the current user, or nil when logged out.
func (s *Store) User() *users.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	userCopy := *s.user
	return &userCopy
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) setSession(user *users.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userCopy := *user
	s.user = &userCopy
	s.authenticated = true
	s.loading = false
	s.lastErr = nil
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
	s.lastErr = nil
}

func (s *Store) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.lastErr = err
}

func (s *Store) countAction(action string) {
	if s.metrics != nil {
		s.metrics.CounterStoreActions.WithLabelValues("auth", action).Inc()
	}
}
