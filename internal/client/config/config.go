// Package config persists the publisher CLI's settings: the API base URL
// and the session token obtained at login. Stored as a JSON file under the
// user config directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotConfigured indicates init has not been run yet.
var ErrNotConfigured = errors.New("config: api url is not set, run init first")

// ErrNotAuthenticated indicates no stored session token.
var ErrNotAuthenticated = errors.New("config: not logged in, run login first")

const (
	appDirName = "press"
	fileName   = "config.json"
)

// Config is the persisted CLI state.
type Config struct {
	APIURL    string `json:"api_url"`
	AuthToken string `json:"auth_token,omitempty"`
}

// Store reads and writes the config file.
type Store struct {
	path string
}

// NewStore locates the config file under the user config directory.
func NewStore() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("config: locate config dir: %w", err)
	}
	return &Store{path: filepath.Join(base, appDirName, fileName)}, nil
}

// NewStoreAt uses an explicit file path. Test seam.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored config. A missing file reads as an empty config.
func (s *Store) Load() (Config, error) {
	var cfg Config
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", s.path, err)
	}
	return cfg, nil
}

// Save writes the config, creating the directory on first use. The file is
// owner-only since it holds the session token.
func (s *Store) Save(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("config: create config dir: %w", err)
	}
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", s.path, err)
	}
	return nil
}

// SetAPIURL stores a normalized base URL, preserving any existing token.
func (s *Store) SetAPIURL(url string) error {
	cfg, err := s.Load()
	if err != nil {
		return err
	}
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(url), "/")
	return s.Save(cfg)
}

// SetToken stores the session token.
func (s *Store) SetToken(token string) error {
	cfg, err := s.Load()
	if err != nil {
		return err
	}
	cfg.AuthToken = token
	return s.Save(cfg)
}

// ClearToken drops the stored session token.
func (s *Store) ClearToken() error {
	return s.SetToken("")
}

// Require returns the config, failing when the API URL is unset. When
// needAuth is set, a missing token fails too.
func (s *Store) Require(needAuth bool) (Config, error) {
	cfg, err := s.Load()
	if err != nil {
		return cfg, err
	}
	if cfg.APIURL == "" {
		return cfg, ErrNotConfigured
	}
	if needAuth && cfg.AuthToken == "" {
		return cfg, ErrNotAuthenticated
	}
	return cfg, nil
}
