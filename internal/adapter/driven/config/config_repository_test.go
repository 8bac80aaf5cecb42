package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFileFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "finsight.toml", `
backend_url = "http://finance.local:9000"
timeout_seconds = 30
report_type = ["pdf", "xlsx"]

[endpoints]
chat = "/ask"

[archive]
bucket = "reports"
`},
		{"yaml", "finsight.yml", `
backend_url: http://finance.local:9000
timeout_seconds: 30
report_type: [pdf, xlsx]
endpoints:
  chat: /ask
archive:
  bucket: reports
`},
		{"json", "finsight.json", `{
  "backend_url": "http://finance.local:9000",
  "timeout_seconds": 30,
  "report_type": ["pdf", "xlsx"],
  "endpoints": {"chat": "/ask"},
  "archive": {"bucket": "reports"}
}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfigRepository().LoadConfigFile(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, "http://finance.local:9000", cfg.BackendURL)
			assert.Equal(t, 30, cfg.TimeoutSeconds)
			assert.Equal(t, []string{"pdf", "xlsx"}, cfg.ReportType)
			assert.Equal(t, "/ask", cfg.Endpoints.Chat)
			assert.Equal(t, "/get_graph_data/", cfg.Endpoints.Categories, "missing endpoints fall back to defaults")
			assert.Equal(t, "reports", cfg.Archive.Bucket)
		})
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(writeFile(t, "finsight.ini", "backend_url=x"))
	assert.ErrorIs(t, err, types.ErrUnsupportedConfigFormat)

	_, err = repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = repo.LoadConfigFile(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = repo.LoadConfigFile(writeFile(t, "broken.json", "{"))
	assert.ErrorContains(t, err, "error parsing JSON file")
}

func TestLoadEnvOverridesConfig(t *testing.T) {
	t.Setenv("FINSIGHT_BACKEND_URL", "https://finance.example.com")
	t.Setenv("FINSIGHT_TIMEOUT", "15")
	t.Setenv("FINSIGHT_REPORT_TYPE", "csv, json")
	t.Setenv("FINSIGHT_DEBUG", "true")

	t.Cleanup(func() { os.Unsetenv("FINSIGHT_ARCHIVE_BUCKET") })

	cfg := types.DefaultConfig()
	require.NoError(t, NewConfigRepository().LoadEnv(cfg, writeFile(t, ".env", "FINSIGHT_ARCHIVE_BUCKET=from-dotenv\n")))

	assert.Equal(t, "https://finance.example.com", cfg.BackendURL)
	assert.Equal(t, 15, cfg.TimeoutSeconds)
	assert.Equal(t, []string{"csv", "json"}, cfg.ReportType)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "from-dotenv", cfg.Archive.Bucket)
}

func TestLoadEnvProcessWinsOverDotenv(t *testing.T) {
	t.Setenv("FINSIGHT_REPORT_NAME", "from-process")

	cfg := types.DefaultConfig()
	require.NoError(t, NewConfigRepository().LoadEnv(cfg, writeFile(t, ".env", "FINSIGHT_REPORT_NAME=from-dotenv\n")))

	assert.Equal(t, "from-process", cfg.ReportName)
}

func TestLoadEnvRejectsBadValues(t *testing.T) {
	t.Setenv("FINSIGHT_TIMEOUT", "soon")
	t.Setenv("FINSIGHT_DEBUG", "maybe")

	err := NewConfigRepository().LoadEnv(types.DefaultConfig(), writeFile(t, ".env", ""))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "FINSIGHT_TIMEOUT")
	assert.Contains(t, err.Error(), "FINSIGHT_DEBUG")
}

func TestLoadEnvMissingNamedFile(t *testing.T) {
	err := NewConfigRepository().LoadEnv(types.DefaultConfig(), filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}
