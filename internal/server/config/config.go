// Package config handles configuration for the server component,
// including defaults, environment, JSON overlay, and command-line flags.
package config

import (
	"errors"
	"os"
	"time"
)

// Storage backends for uploaded report images.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config holds runtime settings for the lost-and-found server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the HTTP server.
//   - DatabaseDSN: PostgreSQL DSN (pgx).
//   - SecretKey: HMAC secret signing session cookies. Required, no default.
//   - SessionValidityDuration: lifetime of a session cookie.
//   - UploadDir / StaticImgDir: directories for uploaded and static images.
//   - StorageBackend: "local" (UploadDir) or "s3".
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint: S3 settings.
//   - LogLevel: debug, info, warn or error.
//   - Production: masks internal error text in responses and logs JSON.
//   - MigrateOnStart: run embedded migrations before serving.
type Config struct {
	EndpointAddrHTTP        string
	DatabaseDSN             string
	SecretKey               string
	SessionValidityDuration time.Duration
	UploadDir               string
	StaticImgDir            string
	StorageBackend          string
	S3RootUser              string
	S3RootPassword          string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
	LogLevel                string
	Production              bool
	MigrateOnStart          bool
}

// LoadDefaults populates Config with non-secret development defaults.
// Credentials and the secret key are intentionally left empty.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5000"
	c.SessionValidityDuration = 24 * time.Hour
	c.UploadDir = "uploads"
	c.StaticImgDir = "static/img"
	c.StorageBackend = StorageLocal
	c.S3Bucket = "orio"
	c.S3Region = "us-east-1"
	c.LogLevel = "info"
	c.MigrateOnStart = true
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is required"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required"))
	}
	if c.SessionValidityDuration <= 0 {
		errs = append(errs, errors.New("session validity must be positive"))
	}
	switch c.StorageBackend {
	case StorageLocal:
		if c.UploadDir == "" {
			errs = append(errs, errors.New("upload dir is required"))
		}
	case StorageS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("s3 bucket is required"))
		}
	default:
		errs = append(errs, errors.New("unknown storage backend: "+c.StorageBackend))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, os.LookupEnv)
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
