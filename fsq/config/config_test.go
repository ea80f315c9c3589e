package config

import (
	"os"
	"path/filepath"
	"testing"

	internal "github.com/ZanzyTHEbar/fsquery/fsq"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite tests the config package functionality
type ConfigTestSuite struct {
	suite.Suite
	tempDir string
	origDir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	var err error
	suite.origDir, err = os.Getwd()
	require.NoError(suite.T(), err)

	suite.tempDir = suite.T().TempDir()

	// Change to temp directory so a stray ./config.yaml is never picked up
	err = os.Chdir(suite.tempDir)
	require.NoError(suite.T(), err)
}

func (suite *ConfigTestSuite) TearDownTest() {
	if suite.origDir != "" {
		os.Chdir(suite.origDir)
	}
}

func (suite *ConfigTestSuite) TestLoadConfigWithDefaults() {
	cfg, err := LoadConfig(viper.New(), "")

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cfg)

	assert.Equal(suite.T(), 0, cfg.Scan.Workers)
	assert.Equal(suite.T(), -1, cfg.Scan.MaxDepth)
	assert.True(suite.T(), cfg.Scan.Hidden)
	assert.False(suite.T(), cfg.Scan.Gitignore)
	assert.False(suite.T(), cfg.Scan.Archives)
	assert.Equal(suite.T(), int64(0), cfg.Scan.MaxContentBytes)
	assert.Equal(suite.T(), internal.DefaultOutputFormat, cfg.Output.Format)
	assert.Equal(suite.T(), internal.DefaultLogLevel, cfg.Log.Level)
}

func (suite *ConfigTestSuite) TestLoadConfigWithFile() {
	configContent := `
scan:
  workers: 3
  maxDepth: 2
  hidden: false
  gitignore: true
  archives: true
  maxContentBytes: 4096
output:
  format: csv
log:
  level: debug
  pretty: true
`
	configFile := filepath.Join(suite.tempDir, "custom.yaml")
	err := os.WriteFile(configFile, []byte(configContent), 0o644)
	require.NoError(suite.T(), err)

	cfg, err := LoadConfig(viper.New(), configFile)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), 3, cfg.Scan.Workers)
	assert.Equal(suite.T(), 3, cfg.Scan.EffectiveWorkers())
	assert.Equal(suite.T(), 2, cfg.Scan.MaxDepth)
	assert.False(suite.T(), cfg.Scan.Hidden)
	assert.True(suite.T(), cfg.Scan.Gitignore)
	assert.True(suite.T(), cfg.Scan.Archives)
	assert.Equal(suite.T(), int64(4096), cfg.Scan.MaxContentBytes)
	assert.Equal(suite.T(), "csv", cfg.Output.Format)
	assert.Equal(suite.T(), "debug", cfg.Log.Level)
	assert.True(suite.T(), cfg.Log.Pretty)
}

func (suite *ConfigTestSuite) TestEnvironmentOverride() {
	suite.T().Setenv("FSQ_OUTPUT_FORMAT", "json")

	cfg, err := LoadConfig(viper.New(), "")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "json", cfg.Output.Format)
}

func (suite *ConfigTestSuite) TestInvalidFormatRejected() {
	configFile := filepath.Join(suite.tempDir, "bad.yaml")
	require.NoError(suite.T(), os.WriteFile(configFile, []byte("output:\n  format: xml\n"), 0o644))

	_, err := LoadConfig(viper.New(), configFile)
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "unsupported output format")
}

func (suite *ConfigTestSuite) TestMalformedFile() {
	configFile := filepath.Join(suite.tempDir, "broken.yaml")
	require.NoError(suite.T(), os.WriteFile(configFile, []byte("scan: [unterminated"), 0o644))

	_, err := LoadConfig(viper.New(), configFile)
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "failed to read config file")
}

func TestEffectiveWorkersDerived(t *testing.T) {
	w := ScanConfig{}.EffectiveWorkers()
	assert.GreaterOrEqual(t, w, 4)
	assert.LessOrEqual(t, w, 32)
}
