package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	DefaultAPIURL  = "http://127.0.0.1:8000/api"
	DefaultTimeout = 15 * time.Second
)

// Config holds application-level configuration.
type Config struct {
	APIURL    string // e.g. "http://127.0.0.1:8000/api"
	TokenPath string // Path to file containing the access token
	LogPath   string
	LogLevel  zerolog.Level
	Timeout   time.Duration
}

// Load reads configuration from environment variables, after loading an
// optional .env file.
//
//	ECHOTERM_ENV_FILE   .env path (default: ./.env, missing is fine)
//	ECHOTERM_API_URL    API base URL (default: http://127.0.0.1:8000/api)
//	ECHOTERM_TOKEN      Path to token file (default: ~/.config/echoterm/token)
//	ECHOTERM_LOG        Log file (default: ~/.config/echoterm/echoterm.log)
//	ECHOTERM_LOG_LEVEL  zerolog level name (default: info)
//	ECHOTERM_TIMEOUT    HTTP timeout (default: 15s)
func Load() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return Config{}, err
	}

	apiURL, err := parseAPIURL(os.Getenv("ECHOTERM_API_URL"))
	if err != nil {
		return Config{}, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	configDir := filepath.Join(home, ".config", "echoterm")

	tokenPath := os.Getenv("ECHOTERM_TOKEN")
	if tokenPath == "" {
		tokenPath = filepath.Join(configDir, "token")
	}

	logPath := os.Getenv("ECHOTERM_LOG")
	if logPath == "" {
		logPath = filepath.Join(configDir, "echoterm.log")
	}

	level := zerolog.InfoLevel
	if raw := strings.TrimSpace(os.Getenv("ECHOTERM_LOG_LEVEL")); raw != "" {
		level, err = zerolog.ParseLevel(strings.ToLower(raw))
		if err != nil {
			return Config{}, fmt.Errorf("invalid ECHOTERM_LOG_LEVEL %q: %w", raw, err)
		}
	}

	timeout := DefaultTimeout
	if raw := strings.TrimSpace(os.Getenv("ECHOTERM_TIMEOUT")); raw != "" {
		timeout, err = time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return Config{}, fmt.Errorf("invalid ECHOTERM_TIMEOUT %q: must be a positive duration", raw)
		}
	}

	return Config{
		APIURL:    apiURL,
		TokenPath: tokenPath,
		LogPath:   logPath,
		LogLevel:  level,
		Timeout:   timeout,
	}, nil
}

func loadEnvFile() error {
	path := os.Getenv("ECHOTERM_ENV_FILE")
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return nil
	}
	return fmt.Errorf("loading env file %s: %w", path, err)
}

func parseAPIURL(raw string) (string, error) {
	if raw == "" {
		raw = DefaultAPIURL
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid ECHOTERM_API_URL: must be an absolute URL")
	}
	switch parsed.Scheme {
	case "https":
	case "http":
		if !isLoopback(parsed.Hostname()) {
			return "", fmt.Errorf("invalid ECHOTERM_API_URL: http is only allowed for loopback hosts")
		}
	default:
		return "", fmt.Errorf("invalid ECHOTERM_API_URL: unsupported scheme %q", parsed.Scheme)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
