package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	pkgerrors "github.com/zhubert/sketchlab/internal/errors"
)

// DefaultEndpointURL is the inference endpoint used when none is configured.
const DefaultEndpointURL = "http://localhost:8000/generate_json"

// Config holds the application configuration
type Config struct {
	EndpointURL           string `json:"endpoint_url,omitempty"`            // Inference endpoint receiving sketches
	RequestTimeoutSeconds int    `json:"request_timeout_seconds,omitempty"` // 0 waits for the endpoint indefinitely
	DownloadDir           string `json:"download_dir,omitempty"`            // Where downloaded images are written

	DarkMode             bool `json:"dark_mode,omitempty"`             // Start in the dark theme
	NotificationsEnabled bool `json:"notifications_enabled,omitempty"` // Desktop notifications when a generation finishes
	WelcomeShown         bool `json:"welcome_shown,omitempty"`         // Whether the help modal has been shown on first launch

	// endpointOverride comes from the --endpoint flag and is never saved
	endpointOverride string

	mu       sync.RWMutex
	saveMu   sync.Mutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sketchlab"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// New returns a config with defaults that saves to path.
func New(path string) *Config {
	return &Config{filePath: path}
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, pkgerrors.ConfigLoadFailed("~/.sketchlab", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config stored at path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := New(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, pkgerrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, pkgerrors.ConfigLoadFailed(path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.EndpointURL != "" {
		if err := ValidateEndpoint(c.EndpointURL); err != nil {
			return err
		}
	}
	if c.RequestTimeoutSeconds < 0 {
		return pkgerrors.ConfigInvalid(fmt.Sprintf("request_timeout_seconds must not be negative, got %d", c.RequestTimeoutSeconds))
	}
	return nil
}

// ValidateEndpoint reports whether raw is an absolute http(s) URL.
func ValidateEndpoint(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return pkgerrors.ConfigInvalid(fmt.Sprintf("endpoint %q is not a valid URL", raw))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return pkgerrors.ConfigInvalid(fmt.Sprintf("endpoint %q must use http or https", raw))
	}
	if u.Host == "" {
		return pkgerrors.ConfigInvalid(fmt.Sprintf("endpoint %q has no host", raw))
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.mu.RLock()
	data, err := json.MarshalIndent(c, "", "  ")
	path := c.filePath
	c.mu.RUnlock()
	if err != nil {
		return pkgerrors.ConfigSaveFailed(path, err)
	}

	if path == "" {
		if path, err = configPath(); err != nil {
			return pkgerrors.ConfigSaveFailed("~/.sketchlab", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return pkgerrors.ConfigSaveFailed(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return pkgerrors.ConfigSaveFailed(path, err)
	}
	return nil
}

// Path returns the file this config is saved to.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetEndpointURL returns the endpoint in effect: the --endpoint override,
// then the configured value, then DefaultEndpointURL.
func (c *Config) GetEndpointURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.endpointOverride != "" {
		return c.endpointOverride
	}
	if c.EndpointURL != "" {
		return c.EndpointURL
	}
	return DefaultEndpointURL
}

// SetEndpointURL sets the persisted endpoint. It also drops any --endpoint
// override so the saved value takes effect immediately.
func (c *Config) SetEndpointURL(endpoint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.EndpointURL = endpoint
	c.endpointOverride = ""
}

// HasEndpointOverride reports whether --endpoint is in effect.
func (c *Config) HasEndpointOverride() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpointOverride != ""
}

// OverrideEndpoint sets an endpoint for this process only.
func (c *Config) OverrideEndpoint(endpoint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endpointOverride = endpoint
}

// GetRequestTimeout returns the request timeout; zero means no timeout.
func (c *Config) GetRequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// GetRequestTimeoutSeconds returns the saved timeout in whole seconds
func (c *Config) GetRequestTimeoutSeconds() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.RequestTimeoutSeconds
}

// SetRequestTimeoutSeconds sets the request timeout in seconds
func (c *Config) SetRequestTimeoutSeconds(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	c.RequestTimeoutSeconds = seconds
}

// GetDownloadDir returns the configured download directory, falling back to
// ~/Downloads when it exists and the working directory otherwise.
func (c *Config) GetDownloadDir() string {
	c.mu.RLock()
	dir := c.DownloadDir
	c.mu.RUnlock()
	if dir != "" {
		return expandHome(dir)
	}
	return DefaultDownloadDir()
}

// GetSavedDownloadDir returns the download directory as saved, empty when
// the default is in use.
func (c *Config) GetSavedDownloadDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DownloadDir
}

// SetDownloadDir sets the download directory
func (c *Config) SetDownloadDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DownloadDir = dir
}

// DefaultDownloadDir returns ~/Downloads if present, else the working directory.
func DefaultDownloadDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		dl := filepath.Join(home, "Downloads")
		if info, err := os.Stat(dl); err == nil && info.IsDir() {
			return dl
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// GetDarkMode returns whether the dark theme is selected
func (c *Config) GetDarkMode() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DarkMode
}

// SetDarkMode sets whether the dark theme is selected
func (c *Config) SetDarkMode(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DarkMode = enabled
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// HasSeenWelcome returns whether the welcome modal has been shown
func (c *Config) HasSeenWelcome() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WelcomeShown
}

// MarkWelcomeShown marks the welcome modal as shown
func (c *Config) MarkWelcomeShown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WelcomeShown = true
}
