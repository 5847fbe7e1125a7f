package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/orio/internal/flagx"
	"github.com/dmitrijs2005/orio/internal/timex"
)

// JsonConfig is the on-disk shape of the optional configuration file.
// Pointer fields distinguish "absent" from "zero" so a partial file only
// overrides what it mentions.
type JsonConfig struct {
	EndpointAddrHTTP        *string         `json:"endpoint_addr_http"`
	DatabaseDSN             *string         `json:"database_dsn"`
	SecretKey               *string         `json:"secret_key"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration"`
	UploadDir               *string         `json:"upload_dir"`
	StaticImgDir            *string         `json:"static_img_dir"`
	StorageBackend          *string         `json:"storage_backend"`
	S3RootUser              *string         `json:"s3_root_user"`
	S3RootPassword          *string         `json:"s3_root_password"`
	S3Bucket                *string         `json:"s3_bucket"`
	S3Region                *string         `json:"s3_region"`
	S3BaseEndpoint          *string         `json:"s3_base_endpoint"`
	LogLevel                *string         `json:"log_level"`
	Production              *bool           `json:"production"`
	MigrateOnStart          *bool           `json:"migrate_on_start"`
}

// parseJson loads the file named by -c/-config (if any) into config.
// A missing or invalid file panics: the process cannot start half-configured.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	setString(&config.UploadDir, c.UploadDir)
	setString(&config.StaticImgDir, c.StaticImgDir)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)
	if c.Production != nil {
		config.Production = *c.Production
	}
	if c.MigrateOnStart != nil {
		config.MigrateOnStart = *c.MigrateOnStart
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
