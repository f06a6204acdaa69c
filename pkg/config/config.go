// Package config loads the settings file the service boots from. The
// file is JSON, mirroring the settings.json layout the store has
// always shipped with; secrets can be overridden via environment
// variables so they stay out of the file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the explicit configuration object handed to each component
// at construction. No component reads settings from global state.
type Config struct {
	// StoreName is the public name shown on the greeting page.
	StoreName string `json:"store_name"`

	// Listen is the address the HTTP server binds to.
	Listen string `json:"listen"`

	// CatalogDB is the SQLite path for the games table.
	CatalogDB string `json:"catalog_db"`

	// AccountsDB is the SQLite path for the maintainer accounts table.
	AccountsDB string `json:"accounts_db"`

	// LoginPath is the route the login endpoint is mounted at, without
	// the leading slash.
	LoginPath string `json:"login_path"`

	// SeedFile optionally points at a default-games JSON file loaded
	// into an empty catalog on first start.
	SeedFile string `json:"seed_file"`

	// SessionTTLMinutes bounds how long an admin session stays valid.
	SessionTTLMinutes int `json:"session_ttl_minutes"`

	// VerifyLinks enables the reachability check on download URLs when
	// entries are added.
	VerifyLinks bool `json:"verify_links"`

	// Bootstrap admin account, provisioned only when the accounts
	// store is empty. The password may come from GAMESTORE_ADMIN_PASSWORD
	// instead of the settings file.
	AdminUsername string `json:"admin_username"`
	AdminPassword string `json:"admin_password"`
	AdminHashAlgo string `json:"admin_hash_algo"`
	AdminRehash   int    `json:"admin_rehash_count"`
}

// Defaults fills in values a settings file may omit.
func defaults() Config {
	return Config{
		StoreName:         "Game Store",
		Listen:            ":8080",
		CatalogDB:         "games.db",
		AccountsDB:        "accounts.db",
		LoginPath:         "login",
		SessionTTLMinutes: 60,
		AdminUsername:     "admin",
		AdminHashAlgo:     "sha512",
		AdminRehash:       512,
	}
}

// Load reads a settings file. A missing settings file is a startup
// failure; there is nothing sensible to serve without one.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	cfg := defaults()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if password := os.Getenv("GAMESTORE_ADMIN_PASSWORD"); password != "" {
		cfg.AdminPassword = password
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.CatalogDB == "" {
		return fmt.Errorf("settings: catalog_db is required")
	}
	if c.AccountsDB == "" {
		return fmt.Errorf("settings: accounts_db is required")
	}
	if c.LoginPath == "" {
		return fmt.Errorf("settings: login_path is required")
	}
	if c.SessionTTLMinutes < 1 {
		return fmt.Errorf("settings: session_ttl_minutes must be positive")
	}
	if c.AdminRehash < 1 {
		return fmt.Errorf("settings: admin_rehash_count must be positive")
	}
	return nil
}
