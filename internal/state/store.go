package state

import "context"

// Keys for the persisted client state. Entries are simple key/value pairs,
// not versioned, overwritten wholesale on change.
const (
	KeyAuthToken = "authToken"
	KeyUser      = "user"
	KeyTheme     = "theme"
)

// Store is the durable client-side key/value state (the localStorage
// equivalent): auth token, user profile, theme preference.
type Store interface {
	// Get returns the stored value, or "" with a nil error when absent
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
