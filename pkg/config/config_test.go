package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite tests loading and validation
type ConfigTestSuite struct {
	suite.Suite
	tempDir string
}

// SetupTest creates a directory for config files
func (s *ConfigTestSuite) SetupTest() {
	s.tempDir = s.T().TempDir()
}

func (s *ConfigTestSuite) write(content string) string {
	path := filepath.Join(s.tempDir, "diskinfo.toml")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestDefaults tests the built-in defaults
func (s *ConfigTestSuite) TestDefaults() {
	cfg := Default()

	s.Equal("/", cfg.Disk.MountPoint)
	s.Equal("psutil", cfg.Disk.Source)
	s.Equal(15*time.Minute, cfg.RefreshInterval())
	s.Equal("127.0.0.1:8780", cfg.Server.Bind)
	s.Equal("info", cfg.Logging.Level)
	s.Equal("auto", cfg.Display.Color)
	s.Equal("small", cfg.Display.Family)
	s.Equal(3, cfg.Client.RetryMax)
	s.Equal(500*time.Millisecond, cfg.Client.RetryWaitMin())
	s.Equal(5*time.Second, cfg.Client.RetryWaitMax())
	s.Equal(5*time.Second, cfg.Client.RequestTimeout())
	s.NoError(Validate(cfg))
}

// TestLoadEmptyPath tests that no path means defaults
func (s *ConfigTestSuite) TestLoadEmptyPath() {
	cfg, err := Load("")
	s.NoError(err)
	s.Equal(Default(), cfg)
}

// TestLoadOverridesDefaults tests partial files layered over defaults
func (s *ConfigTestSuite) TestLoadOverridesDefaults() {
	path := s.write(`
[disk]
mount_point = "/data"
source = "statfs"

[timeline]
refresh_minutes = 30

[display]
family = "medium"

[client]
url = "http://nas.local:8780"
`)

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal("/data", cfg.Disk.MountPoint)
	s.Equal("statfs", cfg.Disk.Source)
	s.Equal(30*time.Minute, cfg.RefreshInterval())
	s.Equal("medium", cfg.Display.Family)
	s.Equal("http://nas.local:8780", cfg.Client.URL)
	s.Equal("127.0.0.1:8780", cfg.Server.Bind)
	s.Equal(3, cfg.Client.RetryMax)
}

// TestLoadMissingFile tests that an explicit missing path is an error
func (s *ConfigTestSuite) TestLoadMissingFile() {
	_, err := Load(filepath.Join(s.tempDir, "missing.toml"))
	s.ErrorIs(err, os.ErrNotExist)
}

// TestLoadMalformed tests TOML syntax errors
func (s *ConfigTestSuite) TestLoadMalformed() {
	_, err := Load(s.write("[disk\nmount_point = "))
	s.Error(err)
	s.Contains(err.Error(), "parse")
}

// TestValidation tests that each constraint names its key
func (s *ConfigTestSuite) TestValidation() {
	testCases := []struct {
		name    string
		content string
		key     string
	}{
		{"empty_mount_point", "[disk]\nmount_point = \"\"", "disk.mount_point"},
		{"unknown_source", "[disk]\nsource = \"wmi\"", "disk.source"},
		{"zero_refresh", "[timeline]\nrefresh_minutes = 0", "timeline.refresh_minutes"},
		{"empty_bind", "[server]\nbind = \"\"", "server.bind"},
		{"bad_level", "[logging]\nlevel = \"chatty\"", "logging.level"},
		{"empty_level", "[logging]\nlevel = \"\"", "logging.level"},
		{"bad_color", "[display]\ncolor = \"rainbow\"", "display.color"},
		{"bad_family", "[display]\nfamily = \"large\"", "display.family"},
		{"negative_retry", "[client]\nretry_max = -1", "client.retry_max"},
		{"inverted_wait", "[client]\nretry_wait_min_ms = 900\nretry_wait_max_ms = 100", "client.retry_wait_max_ms"},
		{"zero_timeout", "[client]\nrequest_timeout_seconds = 0", "client.request_timeout_seconds"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := Load(s.write(tc.content))
			s.Require().Error(err)
			s.Contains(err.Error(), tc.key)
		})
	}
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
