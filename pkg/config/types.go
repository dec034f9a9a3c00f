package config

import (
	"time"

	"github.com/ledgerfeed/ledgerfeed/internal/profile"
)

type Config struct {
	// Inbox is the directory scanned for pending bank export files.
	Inbox string `json:"inbox"`
	// ArchiveDir is the root of the date-partitioned archive processed files
	// are moved into.
	ArchiveDir string `json:"archiveDir"`

	Database string `json:"database"`

	// UpdateFrequency is the cron schedule used by the watch command.
	UpdateFrequency string `json:"updateFrequency"`
	// Concurrency bounds how many files are processed in parallel.
	Concurrency int `json:"concurrency"`
	// ImportTimeoutSeconds bounds the processing of a single file.
	ImportTimeoutSeconds int `json:"importTimeoutSeconds"`

	InfluxDatabase string `json:"influxDatabase"`

	// Profiles are additional bank profiles tried before the built-in ones.
	Profiles []profile.Profile `json:"profiles"`
}

func (c *Config) ImportTimeout() time.Duration {
	return time.Duration(c.ImportTimeoutSeconds) * time.Second
}

type Secrets struct {
	SQL    SqlSecrets    `json:"sql"`
	Influx InfluxSecrets `json:"influx"`

	// Alternative to the SQL struct, designed to be used with a platform
	// provided connection string.
	DatabaseURL string `env:"DATABASE_URL"`
}

type SqlSecrets struct {
	SqlHost     string `json:"sqlHost" env:"SQL_HOST"`
	SqlUsername string `json:"sqlUsername" env:"SQL_USERNAME"`
	SqlPassword string `json:"sqlPassword" env:"SQL_PASSWORD"`
}

type InfluxSecrets struct {
	InfluxEndpoint string `json:"influxEndpoint" env:"INFLUX_ENDPOINT"`
	InfluxUsername string `json:"influxUsername" env:"INFLUX_USERNAME"`
	InfluxPassword string `json:"influxPassword" env:"INFLUX_PASSWORD"`
}
