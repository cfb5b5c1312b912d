package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DecodeError signals a malformed stored credential
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode credential: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// AuthorizationError signals a credential without a recognized customer role
type AuthorizationError struct {
	Roles []string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("access denied: roles %v do not include a customer role", e.Roles)
}

type tokenClaims struct {
	Subject   string
	Roles     []string
	ExpiresAt time.Time // zero when the token carries no exp claim
}

// decodeToken parses the credential without verifying its signature. The
// guard is a UX convenience only; the backend independently authorizes
// every request, and the client holds no signing secret.
func decodeToken(token string) (*tokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return &tokenClaims{}, &DecodeError{Err: err}
	}

	out := &tokenClaims{}

	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if raw, ok := claims["roles"].([]any); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				out.Roles = append(out.Roles, s)
			}
		}
	}

	return out, nil
}

// hasCustomerRole matches the recognized customer role claims,
// case-insensitively.
func hasCustomerRole(roles []string) bool {
	for _, role := range roles {
		switch strings.ToLower(role) {
		case "customer", "role_customer":
			return true
		}
	}
	return false
}

// unionRoles merges the top-level roles field with the token-embedded
// roles, deduplicated, first-seen order.
func unionRoles(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, roles := range [][]string{a, b} {
		for _, r := range roles {
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}
