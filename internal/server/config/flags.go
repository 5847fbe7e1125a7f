package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/orio/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-s", "-t", "-up", "-img", "-storage", "-u", "-p", "-b", "-g", "-e", "-l", "-prod", "-migrate"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        HTTP bind address (e.g. ":5000")
//	-d string        PostgreSQL DSN
//	-s string        session secret key
//	-t int           session validity, minutes
//	-up string       upload directory
//	-img string      static image directory
//	-storage string  image storage backend: local or s3
//	-u / -p string   S3 root user / password
//	-b / -g / -e     S3 bucket / region / base endpoint
//	-l string        log level
//	-prod bool       production mode
//	-migrate bool    run migrations on start
//
// Only these flags are considered (see flagx.FilterArgs) so -c/-config
// can coexist on the same command line.
func parseFlags(config *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "session secret key")
	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")
	fs.StringVar(&config.UploadDir, "up", config.UploadDir, "upload directory")
	fs.StringVar(&config.StaticImgDir, "img", config.StaticImgDir, "static image directory")
	fs.StringVar(&config.StorageBackend, "storage", config.StorageBackend, "image storage backend (local|s3)")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.Production, "prod", config.Production, "production mode")
	fs.BoolVar(&config.MigrateOnStart, "migrate", config.MigrateOnStart, "run migrations on start")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
}
