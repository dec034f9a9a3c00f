package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yml")

	content := `
inbox: /data/statements
database: feedtest
concurrency: 2
profiles:
  - institution: credit_union
    account: Credit Union
    signature: [Date, Description, Amount]
    dateColumn: Date
    descriptionColumn: Description
    convention: signed
    amountColumn: Amount
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

	t.Setenv("SQL_HOST", "db.internal")
	t.Setenv("SQL_USERNAME", "feed")
	t.Setenv("SQL_PASSWORD", "hunter2")

	// no secrets file on disk, env secrets carry the load
	cfg, secrets, err := Load(configFile, filepath.Join(dir, "secrets.json"))
	require.NoError(t, err)

	assert.Equal(t, "/data/statements", cfg.Inbox)
	assert.Equal(t, "feedtest", cfg.Database)
	assert.Equal(t, 2, cfg.Concurrency)
	require.Len(t, cfg.Profiles, 1)
	assert.Equal(t, "credit_union", cfg.Profiles[0].Institution)

	assert.Equal(t, "db.internal", secrets.SQL.SqlHost)
	assert.Equal(t, "feed", secrets.SQL.SqlUsername)
	assert.Equal(t, "hunter2", secrets.SQL.SqlPassword)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("{}"), 0o644))

	cfg, _, err := Load(configFile, filepath.Join(dir, "secrets.json"))
	require.NoError(t, err)

	assert.Equal(t, "statements", cfg.Inbox)
	assert.Equal(t, "statements/archive", cfg.ArchiveDir)
	assert.Equal(t, "ledgerfeed", cfg.Database)
	assert.Equal(t, "@hourly", cfg.UpdateFrequency)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, time.Minute, cfg.ImportTimeout())
}

func TestLoad_ConfigFromEnvironment(t *testing.T) {
	t.Setenv(ConfigEnvVar, "database: fromenv")

	cfg, _, err := Load(filepath.Join(t.TempDir(), "nope.yml"), filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, "fromenv", cfg.Database)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Load(filepath.Join(dir, "nope.yml"), filepath.Join(dir, "nope.json"))

	assert.Error(t, err)
}
