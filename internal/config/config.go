package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultBackendURL        = "https://voice-ai-backend-production-d079.up.railway.app"
	DefaultRequestTimeout    = 10 * time.Second
	DefaultRetryDelay        = 10 * time.Second
	DefaultStatusClearAfter  = 3 * time.Second
	DefaultTimeDisplayLayout = "1/2/2006, 3:04:05 PM"
	DefaultLogLevel          = "info"

	EnvPrefix = "VOICEAI"
)

type Profile struct {
	BackendURL        string   `json:"backend_url"`
	RequestTimeout    string   `json:"request_timeout,omitempty"`
	RetryDelay        string   `json:"retry_delay,omitempty"`
	StatusClearAfter  string   `json:"status_clear_after,omitempty"`
	VoiceCommand      []string `json:"voice_command,omitempty"`
	TimeDisplayLayout string   `json:"time_display_layout,omitempty"`
	LogLevel          string   `json:"log_level,omitempty"`
}

// DefaultProfile points at the hosted backend with voice input disabled.
func DefaultProfile() Profile {
	return Profile{
		BackendURL:        DefaultBackendURL,
		RequestTimeout:    DefaultRequestTimeout.String(),
		RetryDelay:        DefaultRetryDelay.String(),
		StatusClearAfter:  DefaultStatusClearAfter.String(),
		TimeDisplayLayout: DefaultTimeDisplayLayout,
		LogLevel:          DefaultLogLevel,
	}
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	currentProfile *Profile
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

// ApplyOverrides layers VOICEAI_* environment variables and any flags bound into v over
// the active profile. Overrides are never written back by Save.
func (c *Config) ApplyOverrides(v *viper.Viper) {
	if c.currentProfile == nil || v == nil {
		return
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if u := strings.TrimSpace(v.GetString("backend_url")); u != "" {
		c.currentProfile.BackendURL = u
	}
	if cmd := strings.TrimSpace(v.GetString("voice_command")); cmd != "" {
		c.currentProfile.VoiceCommand = strings.Fields(cmd)
	}
	if lvl := strings.TrimSpace(v.GetString("log_level")); lvl != "" {
		c.currentProfile.LogLevel = lvl
	}
}

// Validate checks that the active profile can reach a backend.
func (c *Config) Validate() error {
	if c.currentProfile == nil {
		return fmt.Errorf("no active profile")
	}
	u, err := url.Parse(c.currentProfile.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid backend_url %q: scheme must be http or https", c.currentProfile.BackendURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid backend_url %q: missing host", c.currentProfile.BackendURL)
	}
	for name, raw := range map[string]string{
		"request_timeout":    c.currentProfile.RequestTimeout,
		"retry_delay":        c.currentProfile.RetryDelay,
		"status_clear_after": c.currentProfile.StatusClearAfter,
	} {
		if raw == "" {
			continue
		}
		if d, err := time.ParseDuration(raw); err != nil || d <= 0 {
			return fmt.Errorf("invalid %s %q", name, raw)
		}
	}
	return nil
}

func (c *Config) IsValid() bool {
	return c.Validate() == nil
}

func (c *Config) GetBackendURL() string {
	if c.currentProfile == nil || c.currentProfile.BackendURL == "" {
		return DefaultBackendURL
	}
	return c.currentProfile.BackendURL
}

func (c *Config) GetRequestTimeout() time.Duration {
	return c.duration(func(p *Profile) string { return p.RequestTimeout }, DefaultRequestTimeout)
}

func (c *Config) GetRetryDelay() time.Duration {
	return c.duration(func(p *Profile) string { return p.RetryDelay }, DefaultRetryDelay)
}

func (c *Config) GetStatusClearAfter() time.Duration {
	return c.duration(func(p *Profile) string { return p.StatusClearAfter }, DefaultStatusClearAfter)
}

func (c *Config) GetVoiceCommand() []string {
	if c.currentProfile == nil {
		return nil
	}
	return c.currentProfile.VoiceCommand
}

func (c *Config) GetTimeDisplayLayout() string {
	if c.currentProfile == nil || c.currentProfile.TimeDisplayLayout == "" {
		return DefaultTimeDisplayLayout
	}
	return c.currentProfile.TimeDisplayLayout
}

func (c *Config) GetLogLevel() string {
	if c.currentProfile == nil || c.currentProfile.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.currentProfile.LogLevel
}

// Dir is the directory holding config.json and the log file.
func (c *Config) Dir() string {
	configPath, err := getConfigPath()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Dir(configPath)
}

func (c *Config) duration(field func(*Profile) string, def time.Duration) time.Duration {
	if c.currentProfile == nil {
		return def
	}
	raw := field(c.currentProfile)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getConfigPath() (string, error) {
	var configDir string

	// Use VOICEAI_HOME if set, otherwise use user's home directory
	if home := os.Getenv("VOICEAI_HOME"); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".voiceai", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			"default": DefaultProfile(),
		},
		ActiveProfile: "default",
	}

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

// ProfileNames returns the profile names in sorted order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UseProfile switches the active profile in memory; call Save to persist it.
func (c *Config) UseProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	return c.setCurrentProfile()
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// If active profile doesn't exist, fall back to the first one by name
		names := c.ProfileNames()
		c.ActiveProfile = names[0]
		profile = c.Profiles[names[0]]
	}

	c.currentProfile = &profile
	return nil
}

// RemoveProfile deletes a profile. Removing the active profile activates the first
// remaining one by name; removing the last profile recreates the default.
func (c *Config) RemoveProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	delete(c.Profiles, name)

	if len(c.Profiles) == 0 {
		c.Profiles["default"] = DefaultProfile()
	}
	if c.ActiveProfile == name {
		c.ActiveProfile = c.ProfileNames()[0]
	}
	return c.setCurrentProfile()
}

// ValidateProfile checks a profile before it is stored.
func ValidateProfile(p Profile) error {
	probe := Config{Profiles: map[string]Profile{"probe": p}, ActiveProfile: "probe"}
	if err := probe.setCurrentProfile(); err != nil {
		return err
	}
	return probe.Validate()
}
