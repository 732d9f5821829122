package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mkazhan/teamkeeper/internal/flagx"
	"github.com/mkazhan/teamkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals
// rely on timex.Duration so JSON can specify them either as strings like
// "15s" or as integer nanoseconds.
type JsonConfig struct {
	OwnerID        string         `json:"owner_id"`
	DataDir        string         `json:"data_dir"`
	RemoteDSN      string         `json:"remote_dsn"`
	ProbeInterval  timex.Duration `json:"probe_interval"`
	FlushInterval  timex.Duration `json:"flush_interval"`
	SealPassphrase string         `json:"seal_passphrase"`
	BackupBucket   string         `json:"backup_bucket"`
	S3Region       string         `json:"s3_region"`
	S3Endpoint     string         `json:"s3_endpoint"`
	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. Without the flag nothing is loaded. Only fields actually
// present in the file override the current values. Read or unmarshal errors
// panic; configuration is resolved once at startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.OwnerID != "" {
		cfg.OwnerID = jc.OwnerID
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.RemoteDSN != "" {
		cfg.RemoteDSN = jc.RemoteDSN
	}
	if jc.ProbeInterval.Duration != 0 {
		cfg.ProbeInterval = time.Duration(jc.ProbeInterval.Duration)
	}
	if jc.FlushInterval.Duration != 0 {
		cfg.FlushInterval = time.Duration(jc.FlushInterval.Duration)
	}
	if jc.SealPassphrase != "" {
		cfg.SealPassphrase = jc.SealPassphrase
	}
	if jc.BackupBucket != "" {
		cfg.BackupBucket = jc.BackupBucket
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3Endpoint != "" {
		cfg.S3Endpoint = jc.S3Endpoint
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
}
