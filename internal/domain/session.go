package domain

import "time"

// User is the stored profile returned by the login endpoint
type User struct {
	ID       int      `json:"userId"`
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// Session is the decoded credential. It is owned exclusively by the session
// guard; other components only read derived values through the guard.
type Session struct {
	Token     string
	Subject   string
	Roles     []string
	ExpiresAt time.Time
	User      User
}
