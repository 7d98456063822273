package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	AdminPasswordHash   string // bcrypt hash of the admin password (preferred)
	AdminPassword       string // plaintext fallback for local development
	StorageDriver       string // "disk" (default) or "s3"
	UploadDir           string // disk driver: where image files land
	PublicBaseURL       string // disk driver: prefix for public asset URLs
	S3Endpoint          string
	S3AccessKey         string
	S3SecretKey         string
	S3Bucket            string
	S3UseSSL            bool
	FrontendURLEndsWith string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	driver := strings.ToLower(viper.GetString("STORAGE_DRIVER"))
	if driver == "" {
		driver = "disk"
	}
	uploadDir := viper.GetString("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "public/uploads"
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		RedisURL:            viper.GetString("REDIS_URL"),
		AdminPasswordHash:   viper.GetString("ADMIN_PASSWORD_HASH"),
		AdminPassword:       viper.GetString("ADMIN_PASSWORD"),
		StorageDriver:       driver,
		UploadDir:           uploadDir,
		PublicBaseURL:       viper.GetString("PUBLIC_BASE_URL"),
		S3Endpoint:          viper.GetString("S3_ENDPOINT"),
		S3AccessKey:         viper.GetString("S3_ACCESS_KEY"),
		S3SecretKey:         viper.GetString("S3_SECRET_KEY"),
		S3Bucket:            viper.GetString("S3_BUCKET"),
		S3UseSSL:            strings.EqualFold(viper.GetString("S3_USE_SSL"), "true"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
	}, nil
}
