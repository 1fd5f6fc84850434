package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceFile     = "file"
	SourceRedis    = "redis"
	SourceMinio    = "minio"
	SourcePostgres = "postgres"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Artifacts ArtifactConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Minio     MinioConfig
	Segment   SegmentConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	AllowOrigins   []string
}

type ArtifactConfig struct {
	Source         string
	Dir            string
	SimilarityName string
	ScalerName     string
	ClusterName    string
	LoadTimeout    time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string
}

type MinioConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	Bucket       string
	ObjectPrefix string
}

type SegmentConfig struct {
	// Labels overrides the built-in cluster descriptions, keyed by cluster id.
	Labels map[int]string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	minioSSL, err := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	if err != nil {
		return nil, errors.New("invalid MINIO_USE_SSL")
	}

	requestTimeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	loadTimeout, err := time.ParseDuration(getEnv("ARTIFACT_LOAD_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ARTIFACT_LOAD_TIMEOUT: %w", err)
	}

	labels, err := ParseLabels(os.Getenv("SEGMENT_LABELS"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "RFM Insight"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RequestTimeout: requestTimeout,
			AllowOrigins:   splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:8080")),
		},
		Artifacts: ArtifactConfig{
			Source:         getEnv("ARTIFACT_SOURCE", SourceFile),
			Dir:            getEnv("ARTIFACT_DIR", "models"),
			SimilarityName: getEnv("ARTIFACT_SIMILARITY", "similarity.json"),
			ScalerName:     getEnv("ARTIFACT_SCALER", "rfm_scaler.json"),
			ClusterName:    getEnv("ARTIFACT_CLUSTER_MODEL", "kmeans_rfm_model.json"),
			LoadTimeout:    loadTimeout,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "rfm_insight"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:      getEnv("REDIS_HOST", "localhost"),
			RedisPort:      getEnv("REDIS_PORT", "6379"),
			RedisPassword:  getEnv("REDIS_PASSWORD", ""),
			RedisDB:        redisDB,
			RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", "rfm:artifact:"),
		},
		Minio: MinioConfig{
			Endpoint:     getEnv("MINIO_ENDPOINT", ""),
			AccessKey:    getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:    getEnv("MINIO_SECRET_KEY", ""),
			UseSSL:       minioSSL,
			Bucket:       getEnv("MINIO_BUCKET", ""),
			ObjectPrefix: getEnv("MINIO_OBJECT_PREFIX", "models/"),
		},
		Segment: SegmentConfig{
			Labels: labels,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Artifacts.Source {
	case SourceFile:
		if c.Artifacts.Dir == "" {
			return errors.New("missing artifact directory")
		}
	case SourceRedis:
	case SourceMinio:
		if c.Minio.Endpoint == "" || c.Minio.Bucket == "" {
			return errors.New("missing minio endpoint or bucket")
		}
		if c.Minio.AccessKey == "" || c.Minio.SecretKey == "" {
			return errors.New("missing minio credentials")
		}
	case SourcePostgres:
		if c.Database.Password == "" {
			return errors.New("missing database password")
		}
	default:
		return fmt.Errorf("unknown artifact source %q", c.Artifacts.Source)
	}

	if c.Server.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}

	return nil
}

// ParseLabels reads "0=High-Value Customer;1=At Risk" into a cluster label map.
func ParseLabels(raw string) (map[int]string, error) {
	labels := make(map[int]string)
	if strings.TrimSpace(raw) == "" {
		return labels, nil
	}

	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idStr, label, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid SEGMENT_LABELS entry %q", pair)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idStr))
		if err != nil {
			return nil, fmt.Errorf("invalid cluster id in SEGMENT_LABELS entry %q", pair)
		}
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, fmt.Errorf("empty label for cluster %d", id)
		}
		labels[id] = label
	}

	return labels, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
