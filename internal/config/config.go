package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage modes
const (
	StorageModeMinio = "minio"
	StorageModeLocal = "local"
)

// MinSigningSecretLength is the minimum accepted length of HMAC signing secrets
const MinSigningSecretLength = 32

type Config struct {
	Env      Env
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Minio    MinioConfig
	Local    LocalBucketConfig
	Upload   UploadConfig
	Auth     AuthConfig
	NATS     NATSConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host               string   `envconfig:"SERVER_HOST" default:"localhost"`
	Port               string   `envconfig:"SERVER_PORT" default:"8080"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

type StorageConfig struct {
	Mode               string        `envconfig:"STORAGE_MODE" default:"minio"`
	UploadHandoffTTL   time.Duration `envconfig:"UPLOAD_HANDOFF_TTL" default:"1h"`
	DownloadHandoffTTL time.Duration `envconfig:"DOWNLOAD_HANDOFF_TTL" default:"1h"`
}

type MinioConfig struct {
	Endpoint   string `envconfig:"MINIO_ENDPOINT"`
	BucketName string `envconfig:"MINIO_BUCKET_NAME" default:"moapyr-files"`
	AccessKey  string `envconfig:"MINIO_ACCESS_KEY"`
	SecretKey  string `envconfig:"MINIO_SECRET_KEY"`
	Region     string `envconfig:"MINIO_REGION"`
	UseSSL     bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

type LocalBucketConfig struct {
	Dir           string `envconfig:"LOCAL_BUCKET_DIR" default:"./data/bucket"`
	PublicBaseURL string `envconfig:"LOCAL_PUBLIC_BASE_URL" default:"http://localhost:8080"`
	SigningSecret string `envconfig:"LOCAL_BUCKET_SIGNING_SECRET"`
}

type UploadConfig struct {
	StrictFinalize bool          `envconfig:"UPLOAD_STRICT_FINALIZE" default:"false"`
	AbandonedTTL   time.Duration `envconfig:"UPLOAD_ABANDONED_TTL" default:"0"`
	CleanupEvery   time.Duration `envconfig:"UPLOAD_CLEANUP_EVERY" default:"15m"`
}

type AuthConfig struct {
	BootstrapSecret string `envconfig:"AUTH_BOOTSTRAP_SECRET"`
	SigningSecret   string `envconfig:"AUTH_SIGNING_SECRET" required:"true"`
	Issuer          string `envconfig:"AUTH_ISSUER" default:"MOAPYR"`
}

type NATSConfig struct {
	URL          string        `envconfig:"NATS_URL"`
	StreamName   string        `envconfig:"NATS_STREAM_NAME" default:"MINIO_EVENTS"`
	ConsumerName string        `envconfig:"NATS_CONSUMER_NAME" default:"moapyr-uploadevents"`
	Subject      string        `envconfig:"NATS_SUBJECT" default:"minio.events"`
	MaxDeliver   int           `envconfig:"NATS_MAX_DELIVER" default:"5"`
	AckWait      time.Duration `envconfig:"NATS_ACK_WAIT" default:"10s"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks rules envconfig tags cannot express
func (c *Config) Validate() error {
	var errs []error

	if len(c.Auth.SigningSecret) < MinSigningSecretLength {
		errs = append(errs, fmt.Errorf("AUTH_SIGNING_SECRET must be at least %d bytes", MinSigningSecretLength))
	}

	switch c.Storage.Mode {
	case StorageModeMinio:
		if c.Minio.Endpoint == "" || c.Minio.AccessKey == "" || c.Minio.SecretKey == "" || c.Minio.BucketName == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_BUCKET_NAME are required in minio mode"))
		}
	case StorageModeLocal:
		if c.Local.Dir == "" || c.Local.PublicBaseURL == "" {
			errs = append(errs, errors.New("LOCAL_BUCKET_DIR and LOCAL_PUBLIC_BASE_URL are required in local mode"))
		}
		if len(c.Local.SigningSecret) < MinSigningSecretLength {
			errs = append(errs, fmt.Errorf("LOCAL_BUCKET_SIGNING_SECRET must be at least %d bytes", MinSigningSecretLength))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_MODE %q", c.Storage.Mode))
	}

	if c.Storage.UploadHandoffTTL <= 0 || c.Storage.DownloadHandoffTTL <= 0 {
		errs = append(errs, errors.New("handoff TTLs must be positive"))
	}
	if c.Upload.AbandonedTTL < 0 {
		errs = append(errs, errors.New("UPLOAD_ABANDONED_TTL cannot be negative"))
	}
	if c.Upload.AbandonedTTL > 0 && c.Upload.CleanupEvery <= 0 {
		errs = append(errs, errors.New("UPLOAD_CLEANUP_EVERY must be positive when cleanup is enabled"))
	}
	if c.Upload.AbandonedTTL > 0 && c.Upload.AbandonedTTL < c.Storage.UploadHandoffTTL {
		errs = append(errs, errors.New("UPLOAD_ABANDONED_TTL cannot be shorter than UPLOAD_HANDOFF_TTL"))
	}

	return errors.Join(errs...)
}

// IsProd reports whether the process runs in production
func (e Env) IsProd() bool {
	return e.Env == "prod" || e.Env == "PROD"
}
