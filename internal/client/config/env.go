package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envOverlay mirrors Config for envconfig. Every variable is optional; only
// set variables override the current values.
type envOverlay struct {
	OwnerID        string        `envconfig:"OWNER_ID"`
	DataDir        string        `envconfig:"DATA_DIR"`
	RemoteDSN      string        `envconfig:"REMOTE_DSN"`
	ProbeInterval  time.Duration `envconfig:"PROBE_INTERVAL"`
	FlushInterval  time.Duration `envconfig:"FLUSH_INTERVAL"`
	SealPassphrase string        `envconfig:"SEAL_PASSPHRASE"`
	BackupBucket   string        `envconfig:"BACKUP_BUCKET"`
	S3Region       string        `envconfig:"S3_REGION"`
	S3Endpoint     string        `envconfig:"S3_ENDPOINT"`
	S3AccessKey    string        `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey    string        `envconfig:"S3_SECRET_KEY"`
}

// parseEnv overlays cfg with TEAMKEEPER_-prefixed environment variables,
// e.g. TEAMKEEPER_REMOTE_DSN or TEAMKEEPER_PROBE_INTERVAL=30s.
func parseEnv(cfg *Config) {
	var e envOverlay
	if err := envconfig.Process("teamkeeper", &e); err != nil {
		panic(err)
	}

	if e.OwnerID != "" {
		cfg.OwnerID = e.OwnerID
	}
	if e.DataDir != "" {
		cfg.DataDir = e.DataDir
	}
	if e.RemoteDSN != "" {
		cfg.RemoteDSN = e.RemoteDSN
	}
	if e.ProbeInterval != 0 {
		cfg.ProbeInterval = e.ProbeInterval
	}
	if e.FlushInterval != 0 {
		cfg.FlushInterval = e.FlushInterval
	}
	if e.SealPassphrase != "" {
		cfg.SealPassphrase = e.SealPassphrase
	}
	if e.BackupBucket != "" {
		cfg.BackupBucket = e.BackupBucket
	}
	if e.S3Region != "" {
		cfg.S3Region = e.S3Region
	}
	if e.S3Endpoint != "" {
		cfg.S3Endpoint = e.S3Endpoint
	}
	if e.S3AccessKey != "" {
		cfg.S3AccessKey = e.S3AccessKey
	}
	if e.S3SecretKey != "" {
		cfg.S3SecretKey = e.S3SecretKey
	}
}
