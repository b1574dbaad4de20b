// Package credentials persists the API token obtained by `ideas login`.
package credentials

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

const credentialsFile = "credentials.json"

// Credentials is a cached bearer token.
type Credentials struct {
	Token     string     `json:"token"`
	Username  string     `json:"username,omitempty"`
	APIURL    string     `json:"api_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Valid reports whether the token is present and not expired at now.
func (c *Credentials) Valid(now time.Time) bool {
	if c == nil || c.Token == "" {
		return false
	}
	return c.ExpiresAt == nil || now.Before(*c.ExpiresAt)
}

// Path returns the full path to credentials.json under basePath.
func Path(basePath string) string {
	return filepath.Join(basePath, credentialsFile)
}

// Exists checks if a credentials file exists.
func Exists(basePath string) bool {
	_, err := os.Stat(Path(basePath))
	return err == nil
}

// Load reads the credentials from disk.
func Load(basePath string) (*Credentials, error) {
	data, err := os.ReadFile(Path(basePath))
	if err != nil {
		return nil, err
	}

	var c Credentials
	if unmarshalErr := json.Unmarshal(data, &c); unmarshalErr != nil {
		return nil, unmarshalErr
	}
	if c.Token == "" {
		return nil, errors.New("credentials file has no token")
	}

	return &c, nil
}

// Save writes the credentials to disk, readable only by the owner.
func Save(basePath string, c *Credentials) error {
	if mkdirErr := os.MkdirAll(basePath, 0o700); mkdirErr != nil {
		return mkdirErr
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(Path(basePath), data, 0o600)
}

// Delete removes the credentials file.
func Delete(basePath string) error {
	err := os.Remove(Path(basePath))
	if os.IsNotExist(err) {
		return nil // Already logged out
	}
	return err
}
