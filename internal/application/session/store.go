// Package session owns the client-side authentication lifecycle: one
// store per running application holds the bearer token and verified
// identity, rehydrates them from persisted credentials at startup, and
// serializes every session-mutating operation.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"transferdesk/internal/infrastructure/api"
	"transferdesk/internal/infrastructure/credentials"
	"transferdesk/internal/shared/authorization"
	sharedConfig "transferdesk/internal/shared/config"
	apperrors "transferdesk/internal/shared/errors"
	"transferdesk/internal/shared/logger"
)

var (
	// ErrOperationInFlight is returned when a session-mutating call
	// overlaps another. Callers retry after the pending call settles.
	ErrOperationInFlight = errors.New("session operation already in flight")
	// ErrAlreadyInitialized is returned by a second Initialize call.
	ErrAlreadyInitialized = errors.New("session already initialized")
)

const (
	defaultVerifyTimeout = 10 * time.Second
	// logoutTimeout bounds the best-effort server logout call. It is
	// deliberately not tied to the verification timeout: shortening
	// verify_timeout must not cut server-side token revocation short.
	logoutTimeout = 10 * time.Second
)

// Store is the single source of truth for "who is logged in".
type Store struct {
	mu           sync.RWMutex
	state        State
	pendingToken string
	subscribers  map[int]chan State
	nextSubID    int
	opInFlight   bool
	initialized  bool

	vault         *credentials.Vault
	client        *api.Client
	verifyTimeout time.Duration
	logger        logger.Interface
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(log logger.Interface) Option {
	return func(s *Store) {
		s.logger = log
	}
}

// WithVerifyTimeout bounds the startup verification call. A hung
// verification would otherwise pin every guarded route behind the
// loading state forever; on timeout the session fails closed.
func WithVerifyTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.verifyTimeout = d
		}
	}
}

// WithClient replaces the API client, mainly for tests.
func WithClient(client *api.Client) Option {
	return func(s *Store) {
		s.client = client
	}
}

// NewStore creates the session store and its API client. The client
// reads the bearer token from the store at send time, so no request can
// observe a half-cleared credential.
func NewStore(apiCfg *sharedConfig.APIConfig, vault *credentials.Vault, opts ...Option) *Store {
	s := &Store{
		state:         State{Loading: true},
		subscribers:   make(map[int]chan State),
		vault:         vault,
		verifyTimeout: defaultVerifyTimeout,
	}
	if apiCfg.GetVerifyTimeout() > 0 {
		s.verifyTimeout = apiCfg.GetVerifyTimeout()
	}

	s.client = api.NewClient(
		apiCfg.BaseURL,
		s.CurrentToken,
		api.WithTimeout(apiCfg.GetRequestTimeout()),
		api.WithIdentityCacheTTL(time.Duration(apiCfg.IdentityCacheSeconds)*time.Second),
	)

	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.NewLogger().Named("session")
	}
	return s
}

// Client exposes the API client for read-only consumers (e.g. Ping).
func (s *Store) Client() *api.Client {
	return s.client
}

// Current returns a snapshot of the session state.
func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentToken is the api.TokenSource for outgoing requests. During a
// rehydration or login it yields the candidate token being verified.
func (s *Store) CurrentToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pendingToken != "" {
		return s.pendingToken
	}
	return s.state.Token
}

// Subscribe registers for state change notifications. The returned
// cancel function must be called to release the subscription. Slow
// consumers may miss intermediate states; Current always has the latest.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan State, 16)
	s.subscribers[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Initialize rehydrates the session from persisted credentials. It runs
// exactly once per process, before any guard decision other than the
// loading state is trusted. Verification failure of any kind ends in the
// anonymous state with both credential scopes cleared; it is never an
// error to the caller.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.beginOperation(); err != nil {
		return err
	}
	defer s.endOperation()

	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return ErrAlreadyInitialized
	}
	s.initialized = true
	s.mu.Unlock()

	token, scope, err := s.vault.Load(ctx)
	if err != nil {
		// Unreadable storage is indistinguishable from no token; the
		// session stays anonymous rather than trusting anything.
		s.logger.Warnw("failed to load stored credential", "error", err)
		s.settle(State{})
		return nil
	}

	if token == "" {
		s.logger.Debug("no stored credential found")
		s.settle(State{})
		return nil
	}

	s.logger.Debugw("rehydrating session", "scope", scope.String())

	if tokenExpired(token, time.Now()) {
		s.logger.Infow("stored token already expired, skipping verification")
		s.discardCandidate(ctx, token)
		return nil
	}

	s.setPendingToken(token)

	verifyCtx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	defer cancel()

	user, err := s.client.CurrentUser(verifyCtx)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
			err = apperrors.NewSessionInvalidError(apiErr.Message())
		}
		s.logger.Infow("stored credential rejected, session reset", "error", err)
		s.discardCandidate(ctx, token)
		return nil
	}

	if _, err := authorization.ParseUserRole(user.Role.String()); err != nil {
		s.logger.Warnw("identity carries unknown role, session reset",
			"error", apperrors.NewRoleUnknownError(user.Role.String()))
		s.discardCandidate(ctx, token)
		return nil
	}

	s.settle(State{Token: token, User: user})
	s.logger.Infow("session rehydrated", "email", user.Email, "role", user.Role.String())
	return nil
}

// Login authenticates the credential pair and persists the token to the
// durable scope when remember is true, the ephemeral scope otherwise.
// On failure the error carries the backend payload unchanged and the
// session state is untouched.
func (s *Store) Login(ctx context.Context, email, password string, remember bool) error {
	if err := s.beginOperation(); err != nil {
		return err
	}
	defer s.endOperation()

	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if resp.Token == "" {
		return apperrors.NewInternalError("login response missing token")
	}
	if _, err := authorization.ParseUserRole(resp.User.Role.String()); err != nil {
		return apperrors.NewRoleUnknownError(resp.User.Role.String())
	}

	scope := credentials.ScopeEphemeral
	if remember {
		scope = credentials.ScopeDurable
	}

	// Persist before publishing: a state where the UI shows a user but
	// no token survives a restart is worse than a failed login.
	if err := s.vault.Save(ctx, scope, resp.Token); err != nil {
		return apperrors.NewInternalError("failed to persist credential", err.Error())
	}

	s.settle(State{Token: resp.Token, User: &resp.User})
	s.logger.Infow("login succeeded",
		"email", resp.User.Email,
		"role", resp.User.Role.String(),
		"scope", scope.String())
	return nil
}

// Logout ends the session. The server call is best effort; local
// teardown happens regardless, and logging out twice is harmless.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.beginOperation(); err != nil {
		return err
	}
	defer s.endOperation()

	current := s.Current()
	if current.Authenticated() {
		logoutCtx, cancel := context.WithTimeout(ctx, logoutTimeout)
		if err := s.client.Logout(logoutCtx); err != nil {
			s.logger.Warnw("server logout failed, proceeding with local teardown", "error", err)
		}
		cancel()
	}

	if current.Token != "" {
		s.client.InvalidateIdentityCache(current.Token)
	}

	if err := s.vault.Clear(ctx); err != nil {
		s.logger.Warnw("failed to clear stored credential", "error", err)
	}

	s.settle(State{})
	s.logger.Info("logged out")
	return nil
}

// beginOperation acquires the single-flight slot for session-mutating
// calls. Overlapping calls (a double-clicked login, a logout racing the
// startup verification) are rejected instead of interleaving writes.
func (s *Store) beginOperation() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opInFlight {
		return ErrOperationInFlight
	}
	s.opInFlight = true
	return nil
}

func (s *Store) endOperation() {
	s.mu.Lock()
	s.opInFlight = false
	s.mu.Unlock()
}

// discardCandidate clears a rejected stored token everywhere and settles
// the session as anonymous (fail closed).
func (s *Store) discardCandidate(ctx context.Context, token string) {
	s.client.InvalidateIdentityCache(token)
	if err := s.vault.Clear(ctx); err != nil {
		s.logger.Warnw("failed to clear rejected credential", "error", err)
	}
	s.settle(State{})
}

func (s *Store) setPendingToken(token string) {
	s.mu.Lock()
	s.pendingToken = token
	s.mu.Unlock()
}

// settle publishes a terminal state for the current operation. Loading
// is always false after the first settle and never becomes true again.
// Sends happen under the lock so a concurrent cancel cannot close a
// channel between snapshot and send; they are non-blocking, so a slow
// subscriber only misses the update.
func (s *Store) settle(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state.Loading = false
	s.state = state
	s.pendingToken = ""
	for _, ch := range s.subscribers {
		select {
		case ch <- state:
		default:
		}
	}
}
