// Package config assembles the client configuration from defaults, an
// optional JSON file, environment variables and command-line flags, in that
// order of precedence.
package config

import "time"

// Config holds runtime settings for the teamkeeper CLI.
type Config struct {
	// OwnerID scopes every record and queue entry to one user.
	OwnerID string

	// DataDir is where the local database lives. Empty means a
	// "teamkeeper" directory under the current working directory.
	DataDir string

	// RemoteDSN is the Postgres connection string of the authoritative
	// store. Empty disables pushing entirely (the app stays offline).
	RemoteDSN string

	// ProbeInterval is how often the monitor pings the remote store.
	ProbeInterval time.Duration

	// FlushInterval is how often an online client drains leftover queue
	// entries outside of reconnect events.
	FlushInterval time.Duration

	// SealPassphrase, when set, derives the key that seals member secret
	// fields at rest. Empty disables sealing.
	SealPassphrase string

	// S3 snapshot backup settings; BackupBucket empty disables backups.
	BackupBucket string
	S3Region     string
	S3Endpoint   string
	S3AccessKey  string
	S3SecretKey  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.OwnerID = "local"
	c.ProbeInterval = 15 * time.Second
	c.FlushInterval = 2 * time.Minute
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
