package config_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-press/internal/client/config"
)

func tempStore(t *testing.T) *config.Store {
	t.Helper()
	return config.NewStoreAt(filepath.Join(t.TempDir(), "press", "config.json"))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	store := tempStore(t)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.APIURL)
	assert.Empty(t, cfg.AuthToken)
}

func TestSetAPIURLNormalizesAndPersists(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.SetAPIURL("https://example.com/api/  "))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api", cfg.APIURL)
}

func TestTokenRoundTripPreservesURL(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.SetAPIURL("https://example.com"))
	require.NoError(t, store.SetToken("tok-123"))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", cfg.APIURL)
	assert.Equal(t, "tok-123", cfg.AuthToken)

	require.NoError(t, store.ClearToken())
	cfg, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.AuthToken)
}

func TestRequireStates(t *testing.T) {
	store := tempStore(t)

	_, err := store.Require(false)
	assert.True(t, errors.Is(err, config.ErrNotConfigured))

	require.NoError(t, store.SetAPIURL("https://example.com"))

	_, err = store.Require(false)
	assert.NoError(t, err)

	_, err = store.Require(true)
	assert.True(t, errors.Is(err, config.ErrNotAuthenticated))

	require.NoError(t, store.SetToken("tok"))
	_, err = store.Require(true)
	assert.NoError(t, err)
}
