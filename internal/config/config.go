package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultBlogCategories is the category set used when CATALOG_BLOG_CATEGORIES is unset.
var DefaultBlogCategories = []string{"Technology", "Travel", "Food", "Lifestyle", "Health", "Cooking"}

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Media     MediaConfig
	MinIO     MinIOConfig
	Catalog   CatalogConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	CORSOrigin   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	// Timeout bounds the initial connect + ping.
	Timeout time.Duration
	// OpTimeout bounds every single store operation.
	OpTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type MediaConfig struct {
	// Backend is "fs" or "minio".
	Backend      string
	Dir          string
	PublicPrefix string
	MaxBytes     int64
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type CatalogConfig struct {
	// Store is "mongo" or "memory".
	Store           string
	BlogCategories  []string
	DefaultAuthor   string
	ProductPageSize int
	BlogPageSize    int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "4000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017/burgerboots")
	v.SetDefault("MONGODB_DATABASE", "burgerboots")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("MONGODB_OP_TIMEOUT", 5)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	v.SetDefault("MEDIA_BACKEND", "fs")
	v.SetDefault("MEDIA_DIR", "uploads")
	v.SetDefault("MEDIA_PUBLIC_PREFIX", "/uploads")
	v.SetDefault("MEDIA_MAX_BYTES", 5<<20)
	v.SetDefault("MINIO_BUCKET", "burgerboots")
	v.SetDefault("CATALOG_STORE", "mongo")
	v.SetDefault("CATALOG_BLOG_CATEGORIES", strings.Join(DefaultBlogCategories, ","))
	v.SetDefault("CATALOG_DEFAULT_AUTHOR", "Burger Boots")
	v.SetDefault("CATALOG_PRODUCT_PAGE_SIZE", 6)
	v.SetDefault("CATALOG_BLOG_PAGE_SIZE", 10)

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			CORSOrigin:   v.GetString("CORS_ORIGIN"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:       v.GetString("MONGODB_URI"),
			Database:  v.GetString("MONGODB_DATABASE"),
			Timeout:   time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
			OpTimeout: time.Duration(v.GetInt("MONGODB_OP_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Media: MediaConfig{
			Backend:      strings.ToLower(v.GetString("MEDIA_BACKEND")),
			Dir:          v.GetString("MEDIA_DIR"),
			PublicPrefix: strings.TrimRight(v.GetString("MEDIA_PUBLIC_PREFIX"), "/"),
			MaxBytes:     v.GetInt64("MEDIA_MAX_BYTES"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
		Catalog: CatalogConfig{
			Store:           strings.ToLower(v.GetString("CATALOG_STORE")),
			BlogCategories:  splitList(v.GetString("CATALOG_BLOG_CATEGORIES")),
			DefaultAuthor:   strings.TrimSpace(v.GetString("CATALOG_DEFAULT_AUTHOR")),
			ProductPageSize: v.GetInt("CATALOG_PRODUCT_PAGE_SIZE"),
			BlogPageSize:    v.GetInt("CATALOG_BLOG_PAGE_SIZE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Catalog.Store {
	case "mongo":
		if c.MongoDB.URI == "" {
			return fmt.Errorf("MONGODB_URI is required when CATALOG_STORE=mongo")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown CATALOG_STORE %q (want mongo or memory)", c.Catalog.Store)
	}
	switch c.Media.Backend {
	case "fs":
		if c.Media.Dir == "" {
			return fmt.Errorf("MEDIA_DIR is required when MEDIA_BACKEND=fs")
		}
	case "minio":
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT is required when MEDIA_BACKEND=minio")
		}
	default:
		return fmt.Errorf("unknown MEDIA_BACKEND %q (want fs or minio)", c.Media.Backend)
	}
	if c.Media.MaxBytes <= 0 {
		return fmt.Errorf("MEDIA_MAX_BYTES must be positive")
	}
	if len(c.Catalog.BlogCategories) == 0 {
		return fmt.Errorf("CATALOG_BLOG_CATEGORIES must list at least one category")
	}
	if c.Catalog.ProductPageSize < 1 || c.Catalog.BlogPageSize < 1 {
		return fmt.Errorf("catalog page sizes must be >= 1")
	}
	if c.MongoDB.OpTimeout <= 0 {
		c.MongoDB.OpTimeout = 5 * time.Second
	}
	return nil
}

// splitList parses a comma separated list, trimming entries and dropping blanks and duplicates.
func splitList(s string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		p := strings.TrimSpace(part)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
