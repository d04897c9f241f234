package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-press/internal/runtimeconfig"
)

func validConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Auth.JWTSecret = "secret"
	cfg.Auth.AdminPasswordHash = "deadbeef"
	return cfg
}

func TestValidateAcceptsDefaultsWithSecrets(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestValidateRequiresJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "  "

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrJWTSecretRequired) {
		t.Fatalf("expected ErrJWTSecretRequired, got %v", err)
	}
}

func TestValidateRequiresAdminPasswordHash(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.AdminPasswordHash = ""

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrAdminPasswordHashRequired) {
		t.Fatalf("expected ErrAdminPasswordHashRequired, got %v", err)
	}
}

func TestValidateRejectsUnknownBlobDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Blob.Driver = "carrier-pigeon"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrBlobDriverUnknown) {
		t.Fatalf("expected ErrBlobDriverUnknown, got %v", err)
	}
}

func TestValidateRequiresBucketForS3(t *testing.T) {
	cfg := validConfig()
	cfg.Blob.Driver = runtimeconfig.BlobDriverS3

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrBlobS3BucketRequired) {
		t.Fatalf("expected ErrBlobS3BucketRequired, got %v", err)
	}

	cfg.Blob.S3.Bucket = "press-bodies"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid s3 config, got %v", err)
	}
}

func TestValidateRejectsBadLogging(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg = validConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestFromEnvOverlaysValues(t *testing.T) {
	t.Setenv("PRESS_HTTP_ADDR", ":9999")
	t.Setenv("PRESS_BLOB_DRIVER", "memory")
	t.Setenv("PRESS_S3_PATH_STYLE", "true")

	cfg := runtimeconfig.FromEnv()
	if cfg.HTTP.Addr != ":9999" {
		t.Fatalf("expected addr override, got %q", cfg.HTTP.Addr)
	}
	if cfg.Blob.Driver != runtimeconfig.BlobDriverMemory {
		t.Fatalf("expected blob driver override, got %q", cfg.Blob.Driver)
	}
	if !cfg.Blob.S3.UsePathStyle {
		t.Fatal("expected path style override")
	}
}
