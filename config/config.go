package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	PublicBaseURL     string `mapstructure:"PUBLIC_BASE_URL"`

	// MongoDB holds the reservation and notification mirrors.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisDraftDB  int    `mapstructure:"REDIS_DRAFT_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Backend REST API.
	APIBaseURL      string        `mapstructure:"API_BASE_URL"`
	APITimeout      time.Duration `mapstructure:"API_TIMEOUT"`
	APIServiceToken string        `mapstructure:"API_SERVICE_TOKEN"`

	// JWTSecret verifies backend-issued bearer tokens and signs calendar feed tokens.
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Calendar presentation.
	Timezone          string        `mapstructure:"TIMEZONE"`
	Locale            string        `mapstructure:"LOCALE"`
	ThemePrimaryColor string        `mapstructure:"THEME_PRIMARY_COLOR"`
	WeekWindowRadius  int           `mapstructure:"WEEK_WINDOW_RADIUS"`
	MirrorMaxAge      time.Duration `mapstructure:"MIRROR_MAX_AGE"`
	DraftTTL          time.Duration `mapstructure:"DRAFT_TTL"`
	PostCacheTTL      time.Duration `mapstructure:"POST_CACHE_TTL"`

	// Cloudinary holds before/after photos for posts.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "beu")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_DRAFT_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("API_BASE_URL", "http://localhost:8000/api")
	viper.SetDefault("API_TIMEOUT", 10*time.Second)
	viper.SetDefault("API_SERVICE_TOKEN", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TIMEZONE", "America/Mexico_City")
	viper.SetDefault("LOCALE", "es")
	viper.SetDefault("THEME_PRIMARY_COLOR", "#8b5cf6")
	viper.SetDefault("WEEK_WINDOW_RADIUS", 260)
	viper.SetDefault("MIRROR_MAX_AGE", 15*time.Minute)
	viper.SetDefault("DRAFT_TTL", 30*time.Minute)
	viper.SetDefault("POST_CACHE_TTL", 5*time.Minute)
	viper.SetDefault("CLOUDINARY_FOLDER", "beu/posts")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location resolves the configured time zone, falling back to the host zone.
func Location() *time.Location {
	if AppConfig.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		log.Printf("Unknown TIMEZONE %q, using host zone", AppConfig.Timezone)
		return time.Local
	}
	return loc
}
