package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite tests settings file loading.
type ConfigTestSuite struct {
	suite.Suite
	tempDir string
}

// SetupSuite runs once before all tests.
func (s *ConfigTestSuite) SetupSuite() {
	var err error
	s.tempDir, err = os.MkdirTemp("", "config-test-*")
	s.Require().NoError(err)
}

// TearDownSuite runs once after all tests.
func (s *ConfigTestSuite) TearDownSuite() {
	if s.tempDir != "" {
		os.RemoveAll(s.tempDir)
	}
}

func (s *ConfigTestSuite) writeSettings(content string) string {
	path := filepath.Join(s.tempDir, "settings.json")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoadFull tests loading a complete settings file.
func (s *ConfigTestSuite) TestLoadFull() {
	path := s.writeSettings(`{
 "store_name": "Drauger OS Games",
 "listen": ":9090",
 "catalog_db": "/var/lib/gamestore/games.db",
 "accounts_db": "/var/lib/gamestore/accounts.db",
 "login_path": "hidden-login",
 "seed_file": "default_games.json",
 "session_ttl_minutes": 30,
 "verify_links": true,
 "admin_username": "root",
 "admin_password": "changeme",
 "admin_hash_algo": "sha3_512",
 "admin_rehash_count": 256
}`)

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.Equal("Drauger OS Games", cfg.StoreName)
	s.Equal(":9090", cfg.Listen)
	s.Equal("hidden-login", cfg.LoginPath)
	s.Equal("default_games.json", cfg.SeedFile)
	s.Equal(30, cfg.SessionTTLMinutes)
	s.True(cfg.VerifyLinks)
	s.Equal("root", cfg.AdminUsername)
	s.Equal("sha3_512", cfg.AdminHashAlgo)
	s.Equal(256, cfg.AdminRehash)
}

// TestLoadDefaults tests that omitted fields fall back to defaults.
func (s *ConfigTestSuite) TestLoadDefaults() {
	cfg, err := Load(s.writeSettings(`{}`))
	s.Require().NoError(err)
	s.Equal("Game Store", cfg.StoreName)
	s.Equal(":8080", cfg.Listen)
	s.Equal("games.db", cfg.CatalogDB)
	s.Equal("accounts.db", cfg.AccountsDB)
	s.Equal("login", cfg.LoginPath)
	s.Equal(60, cfg.SessionTTLMinutes)
	s.False(cfg.VerifyLinks)
}

// TestLoadMissingFile tests that a missing settings file is an error.
func (s *ConfigTestSuite) TestLoadMissingFile() {
	_, err := Load(filepath.Join(s.tempDir, "nope.json"))
	s.Error(err)
}

// TestLoadMalformed tests a broken settings file.
func (s *ConfigTestSuite) TestLoadMalformed() {
	_, err := Load(s.writeSettings(`{not json`))
	s.Error(err)
}

// TestAdminPasswordFromEnv tests the environment override.
func (s *ConfigTestSuite) TestAdminPasswordFromEnv() {
	s.T().Setenv("GAMESTORE_ADMIN_PASSWORD", "from-env")

	cfg, err := Load(s.writeSettings(`{"admin_password": "from-file"}`))
	s.Require().NoError(err)
	s.Equal("from-env", cfg.AdminPassword)
}

// TestValidateRejectsBadValues tests the validation rules.
func (s *ConfigTestSuite) TestValidateRejectsBadValues() {
	_, err := Load(s.writeSettings(`{"catalog_db": ""}`))
	s.Error(err)

	_, err = Load(s.writeSettings(`{"session_ttl_minutes": -1}`))
	s.Error(err)

	_, err = Load(s.writeSettings(`{"admin_rehash_count": 0}`))
	s.Error(err)
}

// TestConfigTestSuite runs the test suite.
func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
