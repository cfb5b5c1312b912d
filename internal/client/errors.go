package client

import "fmt"

// NetworkError is a transport-level failure: the request never produced an
// HTTP response. Callers show an empty list plus an error message; there is
// no automatic retry at this layer.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx HTTP response from the storefront API
type ServerError struct {
	URL    string
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error calling %s: HTTP %d", e.URL, e.Status)
}

// ValidationError is a client-side form check failure, reported inline
// before any network call is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
