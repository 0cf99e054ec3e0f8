package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/CrestNiraj12/terminalreels/domain"
)

// KeyProvider supplies the API key sent in the Authorization header.
type KeyProvider interface {
	APIKey() (string, error)
}

// StaticKey is a KeyProvider backed by a value from the environment.
type StaticKey string

// APIKey returns the key, or domain.ErrMissingAPIKey when it is blank.
func (k StaticKey) APIKey() (string, error) {
	key := strings.TrimSpace(string(k))
	if key == "" {
		return "", domain.ErrMissingAPIKey
	}
	return key, nil
}

// FileKeyProvider reads an API key from a file on disk.
type FileKeyProvider struct {
	path string
}

// NewFileKeyProvider creates a KeyProvider that reads from the given file path.
func NewFileKeyProvider(path string) *FileKeyProvider {
	return &FileKeyProvider{path: path}
}

// APIKey reads and returns the key, trimming whitespace.
func (f *FileKeyProvider) APIKey() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("reading api key from %s: %w", f.path, err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("api key file %s is empty: %w", f.path, domain.ErrMissingAPIKey)
	}

	return key, nil
}

// Resolve picks the provider for the configured key sources. An inline key
// wins over a key file.
func Resolve(inline, path string) KeyProvider {
	if strings.TrimSpace(inline) == "" && strings.TrimSpace(path) != "" {
		return NewFileKeyProvider(path)
	}
	return StaticKey(inline)
}
