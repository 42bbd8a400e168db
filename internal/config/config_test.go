package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
port = 5432
user = "booking"
password = "secret"
dbname = "booking_service"
sslmode = "disable"

[catalog_service]
url = "http://catalog:8081"

[auth]
admin_token = "s3cret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "s3cret", cfg.Auth.AdminToken)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
	assert.Contains(t, cfg.Database.DSN(), "dbname=booking_service")

	// Defaults.
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "booking-service", cfg.Metrics.ServiceName)
	assert.Equal(t, 5, cfg.CatalogService.Timeout)
}

func TestLoad_MissingDatabaseHost(t *testing.T) {
	path := writeConfig(t, `
[catalog_service]
url = "http://catalog:8081"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host")
}

func TestLoad_MissingCatalogURL(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db.internal"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog_service.url")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
