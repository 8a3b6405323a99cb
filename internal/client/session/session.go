// Package session owns the client-side authentication state machine:
// restoring a persisted token on startup, logging in and out, and keeping
// the API client's bearer token in sync. Exactly one Session exists per
// running client; construct it explicitly and pass it to the views that
// need it.
package session

import (
	"context"
	"errors"

	"clubhub-service/internal/client/api"
	"clubhub-service/internal/client/store"
)

// State is the session lifecycle position.
type State int

const (
	// StateUnknown is the initial state before the restoration attempt.
	StateUnknown State = iota
	// StateRestoring means a persisted token is being resolved via /me.
	StateRestoring
	// StateAuthenticating means a login call is in flight.
	StateAuthenticating
	// StateAuthenticated means a live identity is attached.
	StateAuthenticated
	// StateAnonymous means no identity is attached.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateRestoring:
		return "restoring"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "invalid"
}

// ErrConnectivity is surfaced when login fails before the server answered.
// Credential failures carry the server message verbatim instead.
var ErrConnectivity = errors.New("could not reach the server, please try again")

// ErrLoginCancelled means a logout raced the login call and won.
var ErrLoginCancelled = errors.New("login cancelled")

// Session is the single source of truth for client authentication state.
// It runs on the UI's cooperative event loop: methods are not safe for
// concurrent use and are not meant to be.
type Session struct {
	api   *api.Client
	store store.TokenStore

	state State
	user  *api.User
}

func New(apiClient *api.Client, tokenStore store.TokenStore) *Session {
	return &Session{
		api:   apiClient,
		store: tokenStore,
		state: StateUnknown,
	}
}

// State returns the current lifecycle position.
func (s *Session) State() State { return s.state }

// User returns the authenticated identity, or nil.
func (s *Session) User() *api.User { return s.user }

// Authenticated reports whether a live identity is attached.
func (s *Session) Authenticated() bool { return s.state == StateAuthenticated }

// API returns the client whose requests carry the session's token. All
// protected calls go through it so token attachment stays automatic.
func (s *Session) API() *api.Client { return s.api }

// Restore resolves a persisted token into an authenticated session, or
// settles on anonymous. It must complete before any route decision is made;
// while it runs the guard shows a neutral loading state.
//
// Any failure here, from an expired token to a network error, is benign:
// the persisted token is cleared and the user simply isn't logged in.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.store.Load()
	if err != nil || token == "" {
		s.state = StateAnonymous
		return err
	}

	s.state = StateRestoring
	s.api.SetToken(token)

	user, err := s.api.Me(ctx)
	if err != nil {
		s.store.Clear()
		s.api.ClearToken()
		s.user = nil
		s.state = StateAnonymous
		return nil
	}

	s.user = user
	s.state = StateAuthenticated
	return nil
}

// Login exchanges credentials for a token, persists it, and transitions to
// authenticated. The returned user lets the caller route by role.
//
// On a server rejection the error carries the server's message verbatim; on
// a transport failure it is ErrConnectivity. Either way the session stays
// anonymous. A logout issued while the call was in flight wins: the result
// is discarded rather than resurrecting the session.
func (s *Session) Login(ctx context.Context, identifier, password string) (*api.User, error) {
	s.state = StateAuthenticating

	token, user, err := s.api.Login(ctx, identifier, password)
	if err != nil {
		s.state = StateAnonymous
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, ErrConnectivity
	}

	if s.state != StateAuthenticating {
		// Logged out mid-flight; do not resurrect.
		return nil, ErrLoginCancelled
	}

	if err := s.store.Save(token); err != nil {
		s.state = StateAnonymous
		return nil, err
	}
	s.api.SetToken(token)
	s.user = user
	s.state = StateAuthenticated
	return user, nil
}

// Logout clears the persisted token and in-memory identity unconditionally.
// No network round-trip, idempotent.
func (s *Session) Logout() {
	s.store.Clear()
	s.api.ClearToken()
	s.user = nil
	s.state = StateAnonymous
}
