package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingKeyIsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	value, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestFileStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	require.NoError(t, store.Set(ctx, KeyAuthToken, "token-123"))
	require.NoError(t, store.Set(ctx, KeyTheme, "dark"))

	value, err := store.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "token-123", value)

	require.NoError(t, store.Set(ctx, KeyAuthToken, "token-456"))
	value, _ = store.Get(ctx, KeyAuthToken)
	assert.Equal(t, "token-456", value)

	require.NoError(t, store.Delete(ctx, KeyAuthToken))
	value, err = store.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Empty(t, value)

	// Other keys are untouched
	value, _ = store.Get(ctx, KeyTheme)
	assert.Equal(t, "dark", value)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	first := NewFileStore(path)
	require.NoError(t, first.Set(ctx, KeyUser, `{"userId":42}`))

	second := NewFileStore(path)
	value, err := second.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"userId":42}`, value)
}

func TestFileStore_CreatesParentDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")

	store := NewFileStore(path)
	require.NoError(t, store.Set(ctx, KeyTheme, "light"))

	value, err := store.Get(ctx, KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", value)
}

func TestFileStore_DeleteOnEmptyStore(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	assert.NoError(t, store.Delete(context.Background(), "anything"))
}
