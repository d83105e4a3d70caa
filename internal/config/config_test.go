package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://data.moenv.gov.tw/api/v2/aqx_p_432", cfg.API.BaseURL)
	assert.Equal(t, 100, cfg.API.Limit)
	assert.Equal(t, 30, cfg.API.TimeoutSecs)
	assert.False(t, cfg.API.InsecureSkipVerify)
	assert.Equal(t, "outputs/taiwan_aqi_map.html", cfg.Output.MapPath)
	assert.Equal(t, "outputs/aqi_data.csv", cfg.Output.CSVPath)
	assert.Empty(t, cfg.Output.XLSXPath)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chTempDir(t)

	yaml := `
api:
  limit: 50
  timeout_secs: 10
output:
  map_path: out/map.html
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.API.Limit)
	assert.Equal(t, 10, cfg.API.TimeoutSecs)
	assert.Equal(t, "out/map.html", cfg.Output.MapPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.Equal(t, "outputs/aqi_data.csv", cfg.Output.CSVPath)
}

func TestLoadEnvOverrides(t *testing.T) {
	chTempDir(t)

	t.Setenv("AQIMON_API_LIMIT", "25")
	t.Setenv("AQIMON_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.API.Limit)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadAPIKeyFromEnv(t *testing.T) {
	chTempDir(t)

	t.Setenv("AQIMON_API_KEY", "secret-a")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "secret-a", cfg.API.Key)
}

func TestLoadAPIKeyFromUpstreamEnvName(t *testing.T) {
	chTempDir(t)

	t.Setenv("MOENV_API_KEY", "secret-b")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "secret-b", cfg.API.Key)
}

func TestTimeout(t *testing.T) {
	a := APIConfig{TimeoutSecs: 30}
	assert.Equal(t, "30s", a.Timeout().String())
}

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://data.moenv.gov.tw/api/v2/aqx_p_432",
			Key:     "k",
			Limit:   100,
		},
		Output: OutputConfig{
			MapPath: "outputs/map.html",
			CSVPath: "outputs/data.csv",
		},
	}
}

func TestValidateOK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateMissingKey(t *testing.T) {
	cfg := validConfig()
	cfg.API.Key = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.key is required")
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.key is required")
	assert.Contains(t, err.Error(), "api.base_url is required")
	assert.Contains(t, err.Error(), "api.limit must be > 0")
	assert.Contains(t, err.Error(), "output.map_path is required")
	assert.Contains(t, err.Error(), "output.csv_path is required")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
