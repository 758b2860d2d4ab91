package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates runtime configuration for the QuickShare API.
type Config struct {
	Server  ServerConfig
	Dynamo  DynamoConfig
	MinIO   MinIOConfig
	Images  ImageConfig
	Auth    AuthConfig
	Metrics MetricsConfig
}

// ServerConfig parameterizes the HTTP server.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Address returns the listen address in host:port form.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DynamoConfig carries DynamoDB connection details and table names.
type DynamoConfig struct {
	Region string
	// Endpoint overrides the service endpoint, for local development
	// against dynamodb-local. Empty means the AWS default.
	Endpoint    string
	UsersTable  string
	SharesTable string
	ImagesTable string
}

// MinIOConfig carries object-store connection and bucket information.
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
}

// ImageConfig groups image delivery settings.
type ImageConfig struct {
	// BaseURL is the public CDN prefix prepended to stored object keys
	// when building display URLs.
	BaseURL string
	// UploadTTL bounds how long a presigned upload URL stays valid.
	UploadTTL time.Duration
}

// AuthConfig groups authentication-related settings.
type AuthConfig struct {
	TokenSecret string
	TokenTTL    time.Duration
	BcryptCost  int
}

// MetricsConfig groups observability settings.
type MetricsConfig struct {
	PrometheusPath string
}

// Load reads configuration values from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:         getString("QUICKSHARE_API_HOST", "0.0.0.0"),
			Port:         getInt("QUICKSHARE_API_PORT", 8080),
			ReadTimeout:  getDuration("QUICKSHARE_API_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDuration("QUICKSHARE_API_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDuration("QUICKSHARE_API_IDLE_TIMEOUT", 60*time.Second),
		},
		Dynamo: DynamoConfig{
			Region:      getString("AWS_REGION", "us-east-1"),
			Endpoint:    getString("DYNAMODB_ENDPOINT", ""),
			UsersTable:  getString("USERS_TABLE", "quickshare_users"),
			SharesTable: getString("QUICKSHARES_TABLE", "quickshare_shares"),
			ImagesTable: getString("IMAGES_TABLE", "quickshare_images"),
		},
		MinIO: MinIOConfig{
			Endpoint:        getString("MINIO_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getString("MINIO_ROOT_USER", "quickshare"),
			SecretAccessKey: getString("MINIO_ROOT_PASSWORD", "change-me-strong-password"),
			Bucket:          getString("IMAGES_BUCKET", "quickshare-images"),
			UseSSL:          getBool("MINIO_USE_SSL", false),
			Region:          getString("MINIO_REGION", ""),
		},
		Images: ImageConfig{
			BaseURL:   getString("QUICKSHARE_IMAGE_CDN_URL", ""),
			UploadTTL: getDuration("QUICKSHARE_IMAGE_UPLOAD_TTL", time.Minute),
		},
		Auth: loadAuthConfig(),
		Metrics: MetricsConfig{
			PrometheusPath: getString("QUICKSHARE_METRICS_PATH", "/metrics"),
		},
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.ToLower(strings.TrimSpace(val))
		switch val {
		case "1", "true", "t", "yes", "y":
			return true
		case "0", "false", "f", "no", "n":
			return false
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func loadAuthConfig() AuthConfig {
	cost := getInt("QUICKSHARE_AUTH_BCRYPT_COST", 10)
	if cost < 4 || cost > 31 {
		cost = 10
	}

	return AuthConfig{
		TokenSecret: getString("QUICKSHARE_JWT_SECRET", "change-me-to-a-32-byte-secret"),
		TokenTTL:    getDuration("QUICKSHARE_AUTH_TOKEN_TTL", 24*time.Hour),
		BcryptCost:  cost,
	}
}
