package config

import (
	"flag"
	"os"
	"time"

	"github.com/arefyev/sealmsg/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags. The
// argument list is filtered through flagx.FilterArgs so this parser never
// sees flags owned by other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-o", "-b", "-r", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.CourierEndpoint, "a", cfg.CourierEndpoint, "base URL of the message courier endpoint")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	fs.StringVar(&cfg.StorageEndpoint, "o", cfg.StorageEndpoint, "object storage endpoint (host:port)")
	fs.StringVar(&cfg.StorageBucket, "b", cfg.StorageBucket, "object storage bucket")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address for background jobs")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
