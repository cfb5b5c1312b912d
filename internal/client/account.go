package client

import (
	"context"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Credentials is the login form
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs the client-side form checks. Validation errors are shown
// inline; no network call happens until they pass.
func (c Credentials) Validate() error {
	if !emailPattern.MatchString(c.Email) {
		return &ValidationError{Field: "email", Message: "please enter a valid email address"}
	}
	if len(c.Password) < 6 {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters long"}
	}
	return nil
}

// LoginResult is the login response: token plus the user profile
type LoginResult struct {
	Token    string   `json:"token"`
	Roles    []string `json:"roles"`
	UserID   int      `json:"userId"`
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	Message  string   `json:"message"`
}

// Login authenticates against POST /user/login. Role checks happen in the
// session guard, not here.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	url := "/user/login"

	var result LoginResult
	resp, err := c.newRequest(ctx).
		SetBody(creds).
		SetResult(&result).
		Post(url)
	if err := c.checkResponse(url, resp, err); err != nil {
		return nil, err
	}

	log.Debugf("Login succeeded for user %d", result.UserID)
	return &result, nil
}

// SignupForm is the registration form
type SignupForm struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
	Phone           string `json:"phoneNumber"`
}

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// Validate runs the client-side registration checks
func (f SignupForm) Validate() error {
	if strings.TrimSpace(f.FirstName) == "" {
		return &ValidationError{Field: "firstName", Message: "first name is required"}
	}
	if strings.TrimSpace(f.LastName) == "" {
		return &ValidationError{Field: "lastName", Message: "last name is required"}
	}
	if !emailPattern.MatchString(f.Email) {
		return &ValidationError{Field: "email", Message: "please enter a valid email address"}
	}
	if len(f.Password) < 6 {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters long"}
	}
	if f.Password != f.ConfirmPassword {
		return &ValidationError{Field: "confirmPassword", Message: "passwords do not match"}
	}
	if f.Phone != "" && !phonePattern.MatchString(f.Phone) {
		return &ValidationError{Field: "phoneNumber", Message: "phone number must be 10 digits"}
	}
	return nil
}

// SignupResult is the registration response
type SignupResult struct {
	Message string `json:"message"`
}

// Signup registers a new account via POST /user/signup
func (c *Client) Signup(ctx context.Context, form SignupForm) (*SignupResult, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	url := "/user/signup"

	var result SignupResult
	resp, err := c.newRequest(ctx).
		SetBody(form).
		SetResult(&result).
		Post(url)
	if err := c.checkResponse(url, resp, err); err != nil {
		return nil, err
	}

	return &result, nil
}
