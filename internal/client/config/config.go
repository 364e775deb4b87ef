package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/nodalhq/nodal-cli/internal/utils"
)

var (
	home, _            = os.UserHomeDir()
	DefaultConfigPath  = filepath.Join(home, ".nodal", "config.json")
	DefaultLogFilePath = filepath.Join(home, ".nodal", "logs", "cli.log")
	DefaultServerURL   = "https://api.nodal.dev"
)

// Config is the CLI session: which server to talk to and the saved refresh
// token. It is loaded once by the root command and passed down explicitly;
// core packages never read ambient state.
type Config struct {
	ServerURL    string `json:"server_url"`
	Email        string `json:"email"`
	RefreshToken string `json:"refresh_token"`

	// AccessToken is obtained at runtime by refreshing; never serialized.
	AccessToken string `json:"-"`
	// Path the config was loaded from.
	Path string `json:"-"`
}

func (c *Config) Validate() error {
	if err := utils.ValidateURL(c.ServerURL); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return fmt.Errorf("config: invalid email %q", c.Email)
	}

	return nil
}

// LoggedIn reports whether a saved session exists.
func (c *Config) LoggedIn() bool {
	return c.RefreshToken != ""
}

func (c *Config) Save() error {
	if c.Path == "" {
		return fmt.Errorf("config: no path to save to")
	}

	if err := utils.EnsureParent(c.Path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.Path, data, 0o600)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	cfg.Path = path
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}

	return &cfg, nil
}
