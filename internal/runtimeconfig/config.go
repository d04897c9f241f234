// Package runtimeconfig holds the server configuration: typed defaults,
// environment overrides, and validation before anything opens a socket or
// database.
package runtimeconfig

import (
	"errors"
	"os"
	"strings"
)

var ErrJWTSecretRequired = errors.New("press config: jwt secret is required")
var ErrAdminPasswordHashRequired = errors.New("press config: admin password hash is required")
var ErrBlobDriverUnknown = errors.New("press config: blob driver is invalid")
var ErrBlobS3BucketRequired = errors.New("press config: s3 bucket is required for the s3 blob driver")
var ErrBlobFSPathRequired = errors.New("press config: blob path is required for the fs blob driver")
var ErrLoggingLevelInvalid = errors.New("press config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("press config: logging format is invalid")

// Blob driver identifiers accepted by Config.Blob.Driver.
const (
	BlobDriverS3     = "s3"
	BlobDriverFS     = "fs"
	BlobDriverMemory = "memory"
)

// Config aggregates every runtime setting of the server binary.
type Config struct {
	HTTP    HTTPConfig
	DB      DBConfig
	Blob    BlobConfig
	Auth    AuthConfig
	Logging LoggingConfig
}

// HTTPConfig captures the listener settings.
type HTTPConfig struct {
	Addr string
}

// DBConfig captures the sqlite connection settings.
type DBConfig struct {
	DSN string
}

// BlobConfig selects and configures the body blob store.
type BlobConfig struct {
	Driver string
	// Path is the base directory for the fs driver.
	Path string
	S3   S3Config
}

// S3Config carries the s3 driver settings.
type S3Config struct {
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	UsePathStyle bool
}

// AuthConfig carries the admin gate settings. AdminPasswordHash is the hex
// sha256 digest of the admin password, never the plaintext.
type AuthConfig struct {
	JWTSecret         string
	AdminPasswordHash string
}

// LoggingConfig mirrors the logger provider settings.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns a development-friendly configuration: local sqlite
// file, filesystem blob store, console logging. Secrets have no defaults.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{Addr: ":8080"},
		DB:   DBConfig{DSN: "press.db"},
		Blob: BlobConfig{
			Driver: BlobDriverFS,
			Path:   "blobdata",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// FromEnv overlays PRESS_* environment variables onto defaults.
func FromEnv() Config {
	cfg := DefaultConfig()

	setString(&cfg.HTTP.Addr, "PRESS_HTTP_ADDR")
	setString(&cfg.DB.DSN, "PRESS_DB_DSN")
	setString(&cfg.Blob.Driver, "PRESS_BLOB_DRIVER")
	setString(&cfg.Blob.Path, "PRESS_BLOB_PATH")
	setString(&cfg.Blob.S3.Region, "PRESS_S3_REGION")
	setString(&cfg.Blob.S3.Bucket, "PRESS_S3_BUCKET")
	setString(&cfg.Blob.S3.AccessKey, "PRESS_S3_ACCESS_KEY")
	setString(&cfg.Blob.S3.SecretKey, "PRESS_S3_SECRET_KEY")
	setString(&cfg.Blob.S3.BaseEndpoint, "PRESS_S3_ENDPOINT")
	setBool(&cfg.Blob.S3.UsePathStyle, "PRESS_S3_PATH_STYLE")
	setString(&cfg.Auth.JWTSecret, "PRESS_JWT_SECRET")
	setString(&cfg.Auth.AdminPasswordHash, "PRESS_ADMIN_PASSWORD_HASH")
	setString(&cfg.Logging.Level, "PRESS_LOG_LEVEL")
	setString(&cfg.Logging.Format, "PRESS_LOG_FORMAT")
	setBool(&cfg.Logging.AddSource, "PRESS_LOG_ADD_SOURCE")

	return cfg
}

// Validate checks cross-field consistency. Secrets are mandatory; the blob
// driver must name a known implementation with its settings present.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ErrJWTSecretRequired
	}
	if strings.TrimSpace(c.Auth.AdminPasswordHash) == "" {
		return ErrAdminPasswordHashRequired
	}

	switch c.Blob.Driver {
	case BlobDriverS3:
		if strings.TrimSpace(c.Blob.S3.Bucket) == "" {
			return ErrBlobS3BucketRequired
		}
	case BlobDriverFS:
		if strings.TrimSpace(c.Blob.Path) == "" {
			return ErrBlobFSPathRequired
		}
	case BlobDriverMemory:
	default:
		return ErrBlobDriverUnknown
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ErrLoggingLevelInvalid
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}

	return nil
}

func setString(dst *string, key string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*dst = value
	}
}

func setBool(dst *bool, key string) {
	if value, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(value) {
		case "1", "true", "yes", "on":
			*dst = true
		case "0", "false", "no", "off":
			*dst = false
		}
	}
}
