package config

import (
	"flag"
	"os"
	"time"

	"github.com/mkazhan/teamkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   owner id
//	-d string   data directory for the local database
//	-r string   remote Postgres DSN
//	-i int      remote probe interval in seconds
//	-f int      background flush interval in seconds
//	-b string   snapshot backup bucket
//
// os.Args is filtered through flagx.FilterArgs so unrelated flags (like the
// -c/-config file flag) do not trip the flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-d", "-r", "-i", "-f", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.OwnerID, "u", cfg.OwnerID, "owner id")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for the local database")
	fs.StringVar(&cfg.RemoteDSN, "r", cfg.RemoteDSN, "remote Postgres DSN")
	probeInterval := fs.Int("i", int(cfg.ProbeInterval.Seconds()), "remote probe interval (in seconds)")
	flushInterval := fs.Int("f", int(cfg.FlushInterval.Seconds()), "background flush interval (in seconds)")
	fs.StringVar(&cfg.BackupBucket, "b", cfg.BackupBucket, "snapshot backup bucket")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ProbeInterval = time.Duration(*probeInterval) * time.Second
	cfg.FlushInterval = time.Duration(*flushInterval) * time.Second
}
