package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoCredential indicates no access token is available. Callers treat it as
// an anonymous session rather than a failure.
var ErrNoCredential = errors.New("no credential")

// TokenProvider supplies an access token for API authentication.
type TokenProvider interface {
	AccessToken() (string, error)
}

// FileTokenProvider reads a token from a file on disk.
type FileTokenProvider struct {
	path string
}

// NewFileTokenProvider creates a TokenProvider that reads from the given file path.
func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path}
}

// AccessToken reads and returns the token, trimming whitespace.
func (f *FileTokenProvider) AccessToken() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("token file %s: %w", f.path, ErrNoCredential)
		}
		return "", fmt.Errorf("reading token from %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty: %w", f.path, ErrNoCredential)
	}

	return token, nil
}

// EnvTokenProvider reads a token from an environment variable.
type EnvTokenProvider struct {
	key string
}

// NewEnvTokenProvider creates a TokenProvider backed by the named variable.
func NewEnvTokenProvider(key string) EnvTokenProvider {
	return EnvTokenProvider{key: key}
}

func (e EnvTokenProvider) AccessToken() (string, error) {
	token := strings.TrimSpace(os.Getenv(e.key))
	if token == "" {
		return "", fmt.Errorf("%s not set: %w", e.key, ErrNoCredential)
	}
	return token, nil
}

// ChainTokenProvider returns the first token found among its providers.
type ChainTokenProvider []TokenProvider

func (c ChainTokenProvider) AccessToken() (string, error) {
	for _, p := range c {
		token, err := p.AccessToken()
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, ErrNoCredential) {
			return "", err
		}
	}
	return "", ErrNoCredential
}

// StaticToken is a fixed token, mostly useful in tests and the sandbox.
type StaticToken string

func (s StaticToken) AccessToken() (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", ErrNoCredential
	}
	return string(s), nil
}

// HasCredential reports whether p currently yields a token.
func HasCredential(p TokenProvider) bool {
	if p == nil {
		return false
	}
	_, err := p.AccessToken()
	return err == nil
}
