package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	globalConfig Config
	once         sync.Once
)

// Config is assembled once at startup and passed by reference into the
// components that need it. Request-handling code must not reach back into
// viper.
type Config struct {
	// Server
	ServerHost         string        `mapstructure:"server_host"`
	ServerPort         int           `mapstructure:"server_port"`
	ServerReadTimeout  time.Duration `mapstructure:"server_read_timeout"`
	ServerWriteTimeout time.Duration `mapstructure:"server_write_timeout"`
	ServerIdleTimeout  time.Duration `mapstructure:"server_idle_timeout"`
	Environment        string        `mapstructure:"environment"`
	LogLevel           string        `mapstructure:"log_level"`

	// Database
	DBHost            string `mapstructure:"db_host"`
	DBPort            int    `mapstructure:"db_port"`
	DBUsername        string `mapstructure:"db_username"`
	DBPassword        string `mapstructure:"db_password"`
	DBName            string `mapstructure:"db_name"`
	DBSSLMode         string `mapstructure:"db_sslmode"`
	DBMaxOpenConns    int    `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns    int    `mapstructure:"db_max_idle_conns"`
	DBConnMaxLifetime int    `mapstructure:"db_conn_max_lifetime"`

	// Model service (LM Studio or any OpenAI-compatible endpoint)
	ModelBaseURL     string        `mapstructure:"model_base_url"`
	ModelAPIKey      string        `mapstructure:"model_api_key"`
	ImageModel       string        `mapstructure:"image_model"`
	TextModel        string        `mapstructure:"text_model"`
	EmbeddingModel   string        `mapstructure:"embedding_model"`
	ModelTemperature float32       `mapstructure:"model_temperature"`
	EmbedTimeout     time.Duration `mapstructure:"embed_timeout"`
	FallbackTimeout  time.Duration `mapstructure:"fallback_timeout"`

	// Search tuning
	SearchDefaultLimit  int     `mapstructure:"search_default_limit"`
	SearchMaxLimit      int     `mapstructure:"search_max_limit"`
	SearchAdaptiveDelta float32 `mapstructure:"search_adaptive_delta"`
	SearchAdaptiveCap   float32 `mapstructure:"search_adaptive_cap"`
	SearchHNSWEfSearch  int     `mapstructure:"search_hnsw_ef_search"`
	SearchIVFFlatProbes int     `mapstructure:"search_ivfflat_probes"`

	// Storage
	StorageType      string `mapstructure:"storage_type"`
	StorageLocalPath string `mapstructure:"storage_local_path"`

	StorageMinioEndpoint  string `mapstructure:"storage_minio_endpoint"`
	StorageMinioAccessKey string `mapstructure:"storage_minio_access_key"`
	StorageMinioSecretKey string `mapstructure:"storage_minio_secret_key"`
	StorageMinioBucket    string `mapstructure:"storage_minio_bucket"`
	StorageMinioUseSSL    bool   `mapstructure:"storage_minio_use_ssl"`

	StorageWebDAVURL      string `mapstructure:"storage_webdav_url"`
	StorageWebDAVUsername string `mapstructure:"storage_webdav_username"`
	StorageWebDAVPassword string `mapstructure:"storage_webdav_password"`
	StorageWebDAVRoot     string `mapstructure:"storage_webdav_root"`

	// Rate limiting
	RateLimitAPIRPS     float64       `mapstructure:"rate_limit_api_rps"`
	RateLimitAPIBurst   int           `mapstructure:"rate_limit_api_burst"`
	RateLimitExpireTime time.Duration `mapstructure:"rate_limit_expire_time"`
}

// InitConfig loads configuration exactly once.
func InitConfig() {
	once.Do(loadConfig)
}

func Get() *Config {
	return &globalConfig
}

func loadConfig() {
	setDefaults()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Info: .env file not found, using defaults and environment variables")
	} else {
		fmt.Fprintln(os.Stderr, "Info: Loaded configuration from .env file")
	}

	viper.AutomaticEnv()
	for _, key := range viper.AllKeys() {
		viper.BindEnv(key)
	}

	if err := viper.Unmarshal(&globalConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: Unable to unmarshal config, %v\n", err)
		os.Exit(1)
	}
}

func setDefaults() {
	viper.SetDefault("server_host", "127.0.0.1")
	viper.SetDefault("server_port", 8080)
	viper.SetDefault("server_read_timeout", "15s")
	viper.SetDefault("server_write_timeout", "30s")
	viper.SetDefault("server_idle_timeout", "120s")
	viper.SetDefault("environment", "dev")
	viper.SetDefault("log_level", "")

	viper.SetDefault("db_host", "localhost")
	viper.SetDefault("db_port", 5432)
	viper.SetDefault("db_username", "postgres")
	viper.SetDefault("db_password", "")
	viper.SetDefault("db_name", "photodex")
	viper.SetDefault("db_sslmode", "disable")
	viper.SetDefault("db_max_open_conns", 100)
	viper.SetDefault("db_max_idle_conns", 25)
	viper.SetDefault("db_conn_max_lifetime", 3600)

	viper.SetDefault("model_base_url", "http://localhost:1234/v1")
	viper.SetDefault("model_api_key", "lm-studio")
	viper.SetDefault("image_model", "qwen/qwen3-vl-4b")
	viper.SetDefault("text_model", "llama2")
	viper.SetDefault("embedding_model", "text-embedding-nomic-embed-text-v1.5")
	viper.SetDefault("model_temperature", 0.2)
	viper.SetDefault("embed_timeout", "5s")
	viper.SetDefault("fallback_timeout", "2s")

	viper.SetDefault("search_default_limit", 24)
	viper.SetDefault("search_max_limit", 200)
	viper.SetDefault("search_adaptive_delta", 0.05)
	viper.SetDefault("search_adaptive_cap", 0.60)
	viper.SetDefault("search_hnsw_ef_search", 80)
	viper.SetDefault("search_ivfflat_probes", 100)

	viper.SetDefault("storage_type", "local")
	viper.SetDefault("storage_local_path", "./data/images")
	viper.SetDefault("storage_minio_endpoint", "localhost:9000")
	viper.SetDefault("storage_minio_access_key", "")
	viper.SetDefault("storage_minio_secret_key", "")
	viper.SetDefault("storage_minio_bucket", "photodex")
	viper.SetDefault("storage_minio_use_ssl", false)
	viper.SetDefault("storage_webdav_url", "")
	viper.SetDefault("storage_webdav_username", "")
	viper.SetDefault("storage_webdav_password", "")
	viper.SetDefault("storage_webdav_root", "photodex")

	viper.SetDefault("rate_limit_api_rps", 30.0)
	viper.SetDefault("rate_limit_api_burst", 60)
	viper.SetDefault("rate_limit_expire_time", "10m")
}

// Addr returns the listen address as "host:port".
func (c *Config) Addr() string {
	host := c.ServerHost
	if host == "" {
		host = "0.0.0.0"
	}
	port := c.ServerPort
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// DSN assembles the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUsername, c.DBPassword, c.DBName, c.DBSSLMode)
}
