package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	baseURLEnv = "FITPRINT_API_URL"
	tokenEnv   = "FITPRINT_API_TOKEN"
	userIDEnv  = "FITPRINT_USER_ID"
	dataDirEnv = "FITPRINT_DATA_DIR"

	defaultBaseURL = "http://localhost:8000"
)

// Client holds the resolved analysis-service settings. It is built once at
// the command layer and injected into the core; core packages never read
// environment state themselves.
type Client struct {
	BaseURL string
	Token   string // optional bearer credential supplied by the session boundary
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load resolves the client configuration from the environment.
func Load() Client {
	return Client{
		BaseURL: getenv(baseURLEnv, defaultBaseURL),
		Token:   os.Getenv(tokenEnv),
	}
}

// UserID returns the caller identity for analysis submissions: the
// configured value if set, otherwise a fresh timestamp-based identifier
// (user_<unix-millis>). Identity is an opaque string at this layer; no
// authentication is enforced here.
func UserID() string {
	if v := os.Getenv(userIDEnv); v != "" {
		return v
	}
	return fmt.Sprintf("user_%d", time.Now().UnixMilli())
}

// DataDir returns the local directory for persistent client state,
// creating it if needed.
func DataDir() (string, error) {
	if v := os.Getenv(dataDirEnv); v != "" {
		return v, os.MkdirAll(v, 0755)
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	dir := filepath.Join(base, "fitprint")
	return dir, os.MkdirAll(dir, 0755)
}

// WardrobePath returns the path of the single durable wardrobe key.
func WardrobePath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wardrobe_images.json"), nil
}
