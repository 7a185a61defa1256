package utils

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const DefaultConfigPath = "config.yaml"

type Config struct {
	// Application
	AppPort             string `yaml:"APP_PORT"`
	AppURL              string `yaml:"APP_URL"`
	CORSAllowOrigins    string `yaml:"CORS_ALLOW_ORIGINS"`
	DefaultProfileImage string `yaml:"DEFAULT_PROFILE_IMAGE"`
	LogLevel            string `yaml:"LOG_LEVEL"`
	LogFile             string `yaml:"LOG_FILE"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`
	DBTimeZone string `yaml:"DB_TIMEZONE"`

	// JWT
	JWTSecret     string `yaml:"JWT_SECRET"`
	JWTIssuer     string `yaml:"JWT_ISSUER"`
	JWTTTLMinutes string `yaml:"JWT_TTL_MINUTES"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY"`
}

var defaults = map[string]string{
	"APP_PORT":              "8000",
	"APP_URL":               "http://localhost:8000",
	"CORS_ALLOW_ORIGINS":    "http://localhost:3000",
	"DEFAULT_PROFILE_IMAGE": "http://localhost:8000/static/img_defecto.avif",
	"LOG_LEVEL":             "info",
	"LOG_FILE":              "./logs/app.log",
	"DB_PORT":               "5432",
	"DB_SSLMODE":            "disable",
	"DB_TIMEZONE":           "UTC",
	"JWT_ISSUER":            "RECIPE-SHARE",
	"JWT_TTL_MINUTES":       "30",
	"SMTP_PORT":             "587",
}

var config Config

// LoadConfig reads the YAML file at path into the process config. A missing file is not an
// error so that a deployment can be configured from the environment alone; environment
// variables always override values from the file.
func LoadConfig(path string) error {
	if path == "" {
		path = DefaultConfigPath
	}

	loaded := Config{}
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &loaded); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return fmt.Errorf("read config %s: %w", path, err)
	}

	config = loaded
	return nil
}

// SetConfig replaces the loaded configuration. Used by tests and tooling.
func SetConfig(c Config) {
	config = c
}

func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if v := fileValue(key); v != "" {
		return v
	}
	return defaults[key]
}

func GetConfigInt(key string) int {
	v, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		v, _ = strconv.Atoi(defaults[key])
	}
	return v
}

// GetConfigMinutes reads an integer number of minutes.
func GetConfigMinutes(key string) time.Duration {
	return time.Duration(GetConfigInt(key)) * time.Minute
}

func fileValue(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "CORS_ALLOW_ORIGINS":
		return config.CORSAllowOrigins
	case "DEFAULT_PROFILE_IMAGE":
		return config.DefaultProfileImage
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FILE":
		return config.LogFile
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_SSLMODE":
		return config.DBSSLMode
	case "DB_TIMEZONE":
		return config.DBTimeZone
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_ISSUER":
		return config.JWTIssuer
	case "JWT_TTL_MINUTES":
		return config.JWTTTLMinutes
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}
