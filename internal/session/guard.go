// Package session owns the storefront credential. The guard is the single
// writer of session state; everything else reads derived values through it.
// It is a UX convenience, not a security boundary: the backend must
// independently authorize every request.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"stylesphere/storefront/internal/client"
	"stylesphere/storefront/internal/domain"
	"stylesphere/storefront/internal/state"

	log "github.com/sirupsen/logrus"
)

// State is the guard's lifecycle position
type State int

const (
	StateUnknown State = iota
	StateChecking
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "invalid"
	}
}

// RouteDecision is the outcome of gating a route against the current state
type RouteDecision int

const (
	// DecisionAllow renders the route content
	DecisionAllow RouteDecision = iota
	// DecisionLoading renders a placeholder until the stored credential check finishes
	DecisionLoading
	// DecisionRedirectLogin sends an unauthenticated visitor to the login route
	DecisionRedirectLogin
	// DecisionRedirectHome sends an authenticated visitor away from login-only routes
	DecisionRedirectHome
)

// Account is the slice of the API client the guard depends on
type Account interface {
	Login(ctx context.Context, creds client.Credentials) (*client.LoginResult, error)
}

// TokenSink receives the bearer token for outbound requests
type TokenSink interface {
	SetAuthToken(token string)
	ClearAuthToken()
}

type Guard struct {
	store   state.Store
	account Account
	sink    TokenSink
	now     func() time.Time

	mu      sync.RWMutex
	state   State
	session *domain.Session
}

func NewGuard(store state.Store, account Account, sink TokenSink) *Guard {
	return &Guard{
		store:   store,
		account: account,
		sink:    sink,
		now:     time.Now,
		state:   StateUnknown,
	}
}

// Init checks the stored credential on startup. A missing token, a decode
// failure, a past expiry or a missing customer role all silently clear the
// credential and land in Unauthenticated; nothing surfaces to the user.
func (g *Guard) Init(ctx context.Context) {
	g.mu.Lock()
	g.state = StateChecking
	g.mu.Unlock()

	token, err := g.store.Get(ctx, state.KeyAuthToken)
	if err != nil {
		log.Warnf("Failed to read stored credential: %v", err)
		g.becomeUnauthenticated(ctx)
		return
	}
	if token == "" {
		g.becomeUnauthenticated(ctx)
		return
	}

	user, _ := g.storedUser(ctx)

	claims, err := decodeToken(token)
	if err != nil {
		log.Debugf("Stored credential is malformed, clearing it: %v", err)
		g.becomeUnauthenticated(ctx)
		return
	}
	if !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(g.now()) {
		log.Debug("Stored credential is expired, clearing it")
		g.becomeUnauthenticated(ctx)
		return
	}

	roles := unionRoles(user.Roles, claims.Roles)
	if !hasCustomerRole(roles) {
		log.Debugf("Stored credential lacks a customer role (%v), clearing it", roles)
		g.becomeUnauthenticated(ctx)
		return
	}

	user.Roles = roles
	g.becomeAuthenticated(&domain.Session{
		Token:     token,
		Subject:   claims.Subject,
		Roles:     roles,
		ExpiresAt: claims.ExpiresAt,
		User:      user,
	})
	log.Infof("Restored session for %s", user.Email)
}

// Login validates the form, authenticates against the API and runs the
// customer-role check. A failed role check is a failed login: the
// credential is discarded and an AuthorizationError returned.
func (g *Guard) Login(ctx context.Context, email, password string) (domain.User, error) {
	creds := client.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return domain.User{}, err
	}

	result, err := g.account.Login(ctx, creds)
	if err != nil {
		return domain.User{}, fmt.Errorf("login failed: %w", err)
	}

	claims, err := decodeToken(result.Token)
	if err != nil {
		return domain.User{}, err
	}

	roles := unionRoles(result.Roles, claims.Roles)
	if !hasCustomerRole(roles) {
		log.Warnf("Login rejected: roles %v lack a customer role", roles)
		g.becomeUnauthenticated(ctx)
		return domain.User{}, &AuthorizationError{Roles: roles}
	}

	user := domain.User{
		ID:       result.UserID,
		FullName: result.FullName,
		Email:    result.Email,
		Roles:    roles,
	}

	if err := g.persist(ctx, result.Token, user); err != nil {
		return domain.User{}, err
	}

	g.becomeAuthenticated(&domain.Session{
		Token:     result.Token,
		Subject:   claims.Subject,
		Roles:     roles,
		ExpiresAt: claims.ExpiresAt,
		User:      user,
	})
	log.Infof("Logged in as %s", user.Email)
	return user, nil
}

// Logout clears the credential on explicit user action
func (g *Guard) Logout(ctx context.Context) {
	g.becomeUnauthenticated(ctx)
	log.Info("Logged out")
}

// Invalidate clears the credential after the backend rejected a request as
// unauthorized.
func (g *Guard) Invalidate(ctx context.Context) {
	log.Warn("Backend rejected the credential, clearing the session")
	g.becomeUnauthenticated(ctx)
}

// Authorize gates a route. requireAuth selects between protected routes and
// routes hidden from authenticated users (the login page).
func (g *Guard) Authorize(requireAuth bool) RouteDecision {
	g.mu.RLock()
	defer g.mu.RUnlock()

	switch g.state {
	case StateUnknown, StateChecking:
		return DecisionLoading
	case StateAuthenticated:
		if requireAuth {
			return DecisionAllow
		}
		return DecisionRedirectHome
	default:
		if requireAuth {
			return DecisionRedirectLogin
		}
		return DecisionAllow
	}
}

// State returns the guard's current lifecycle state
func (g *Guard) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// IsAuthenticated is the derived boolean other components read
func (g *Guard) IsAuthenticated() bool {
	return g.State() == StateAuthenticated
}

// User returns the session user when authenticated
func (g *Guard) User() (domain.User, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.state != StateAuthenticated || g.session == nil {
		return domain.User{}, false
	}
	return g.session.User, true
}

func (g *Guard) becomeAuthenticated(s *domain.Session) {
	if g.sink != nil {
		g.sink.SetAuthToken(s.Token)
	}
	g.mu.Lock()
	g.state = StateAuthenticated
	g.session = s
	g.mu.Unlock()
}

func (g *Guard) becomeUnauthenticated(ctx context.Context) {
	if err := g.store.Delete(ctx, state.KeyAuthToken); err != nil {
		log.Warnf("Failed to clear stored token: %v", err)
	}
	if err := g.store.Delete(ctx, state.KeyUser); err != nil {
		log.Warnf("Failed to clear stored profile: %v", err)
	}
	if g.sink != nil {
		g.sink.ClearAuthToken()
	}
	g.mu.Lock()
	g.state = StateUnauthenticated
	g.session = nil
	g.mu.Unlock()
}

func (g *Guard) persist(ctx context.Context, token string, user domain.User) error {
	if err := g.store.Set(ctx, state.KeyAuthToken, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := g.store.Set(ctx, state.KeyUser, string(data)); err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}
	return nil
}

func (g *Guard) storedUser(ctx context.Context) (domain.User, error) {
	raw, err := g.store.Get(ctx, state.KeyUser)
	if err != nil || raw == "" {
		return domain.User{}, err
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return domain.User{}, fmt.Errorf("failed to parse stored profile: %w", err)
	}
	return user, nil
}
