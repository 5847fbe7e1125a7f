package config

import (
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type lookupFunc func(key string) (string, bool)

// parseEnv overlays Config with environment variables.
//
// DATABASE_DSN wins over the discrete DB_HOST/DB_NAME/DB_USER/DB_PASSWORD/DB_PORT
// variables; the latter are assembled into a DSN only when DB_HOST is set.
func parseEnv(config *Config, lookup lookupFunc) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	if host, ok := lookup("DB_HOST"); ok && host != "" {
		name, _ := lookup("DB_NAME")
		user, _ := lookup("DB_USER")
		password, _ := lookup("DB_PASSWORD")
		port, _ := lookup("DB_PORT")
		config.DatabaseDSN = BuildDSN(host, port, name, user, password)
	}
	str("DATABASE_DSN", &config.DatabaseDSN)

	str("HTTP_ADDR", &config.EndpointAddrHTTP)
	str("SECRET_KEY", &config.SecretKey)
	str("UPLOAD_FOLDER", &config.UploadDir)
	str("STATIC_IMG_FOLDER", &config.StaticImgDir)
	str("STORAGE_BACKEND", &config.StorageBackend)
	str("S3_ROOT_USER", &config.S3RootUser)
	str("S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	str("LOG_LEVEL", &config.LogLevel)
	boolean("PRODUCTION", &config.Production)
	boolean("MIGRATE_ON_START", &config.MigrateOnStart)

	if v, ok := lookup("SESSION_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.SessionValidityDuration = d
		}
	}
}

// BuildDSN assembles a postgres:// URL. The client encoding is pinned to
// UTF8 so accented catalog values round-trip.
func BuildDSN(host, port, name, user, password string) string {
	if port == "" {
		port = "5432"
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(strings.TrimSpace(host), strings.TrimSpace(port)),
		Path:   "/" + name,
	}
	if user != "" {
		if password != "" {
			u.User = url.UserPassword(user, password)
		} else {
			u.User = url.User(user)
		}
	}
	q := url.Values{}
	q.Set("client_encoding", "UTF8")
	u.RawQuery = q.Encode()
	return u.String()
}
