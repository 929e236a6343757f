package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultAppAddr            = ":8080"
	defaultUpstreamTimeout    = 15 * time.Second
	defaultUpstreamRetries    = 2
	defaultUpstreamRetryDelay = 300 * time.Millisecond
	defaultRateLimitRPS       = 5
	defaultRateLimitBurst     = 10
	defaultGalleryFolder      = "travel"
	defaultLogLevel           = "info"
	defaultLogFormat          = "text"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

type Env struct {
	AppAddr string `yaml:"app_addr"`
	GinMode string `yaml:"gin_mode"`

	DatabaseDSN string `yaml:"database_dsn"`

	BackendURL         string        `yaml:"backend_url"`
	UpstreamTimeout    time.Duration `yaml:"upstream_timeout"`
	UpstreamRetries    int           `yaml:"upstream_retries"`
	UpstreamRetryDelay time.Duration `yaml:"upstream_retry_delay"`

	AuthJWTSecret string `yaml:"auth_jwt_secret"`

	MediaAPIURL    string `yaml:"media_api_url"`
	MediaAPIKey    string `yaml:"media_api_key"`
	MediaAPISecret string `yaml:"media_api_secret"`
	GalleryFolder  string `yaml:"gallery_folder"`

	CORSOrigins    []string `yaml:"cors_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// LoadEnv resolves configuration from defaults, an optional YAML file named by
// CONFIG_FILE and the process environment, in that order of precedence.
func LoadEnv() Env {
	_ = godotenv.Load()

	env := DefaultEnv()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := env.mergeFile(path); err != nil {
			log.WithError(err).Warnf("config file %s ignored", path)
		}
	}
	env.mergeOSEnv()
	return env
}

// DefaultEnv returns the configuration used when nothing is set.
func DefaultEnv() Env {
	return Env{
		AppAddr:            defaultAppAddr,
		UpstreamTimeout:    defaultUpstreamTimeout,
		UpstreamRetries:    defaultUpstreamRetries,
		UpstreamRetryDelay: defaultUpstreamRetryDelay,
		GalleryFolder:      defaultGalleryFolder,
		CORSOrigins:        append([]string(nil), defaultCORSOrigins...),
		RateLimitRPS:       defaultRateLimitRPS,
		RateLimitBurst:     defaultRateLimitBurst,
		LogLevel:           defaultLogLevel,
		LogFormat:          defaultLogFormat,
	}
}

func (e *Env) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var file Env
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	// Zero is a valid retry count, so presence is checked separately.
	var explicit struct {
		UpstreamRetries *int `yaml:"upstream_retries"`
	}
	if err := yaml.Unmarshal(data, &explicit); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	setString(&e.AppAddr, file.AppAddr)
	setString(&e.GinMode, file.GinMode)
	setString(&e.DatabaseDSN, file.DatabaseDSN)
	setString(&e.BackendURL, file.BackendURL)
	setString(&e.AuthJWTSecret, file.AuthJWTSecret)
	setString(&e.MediaAPIURL, file.MediaAPIURL)
	setString(&e.MediaAPIKey, file.MediaAPIKey)
	setString(&e.MediaAPISecret, file.MediaAPISecret)
	setString(&e.GalleryFolder, file.GalleryFolder)
	setString(&e.LogLevel, file.LogLevel)
	setString(&e.LogFormat, file.LogFormat)
	if file.UpstreamTimeout > 0 {
		e.UpstreamTimeout = file.UpstreamTimeout
	}
	if explicit.UpstreamRetries != nil && *explicit.UpstreamRetries >= 0 {
		e.UpstreamRetries = *explicit.UpstreamRetries
	}
	if file.UpstreamRetryDelay > 0 {
		e.UpstreamRetryDelay = file.UpstreamRetryDelay
	}
	if len(file.CORSOrigins) > 0 {
		e.CORSOrigins = file.CORSOrigins
	}
	if file.RateLimitRPS > 0 {
		e.RateLimitRPS = file.RateLimitRPS
	}
	if file.RateLimitBurst > 0 {
		e.RateLimitBurst = file.RateLimitBurst
	}
	return nil
}

func (e *Env) mergeOSEnv() {
	setString(&e.AppAddr, os.Getenv("APP_ADDR"))
	setString(&e.GinMode, os.Getenv("GIN_MODE"))
	setString(&e.DatabaseDSN, os.Getenv("DATABASE_DSN"))
	setString(&e.BackendURL, os.Getenv("BACKEND_URL"))
	setString(&e.AuthJWTSecret, os.Getenv("AUTH_JWT_SECRET"))
	setString(&e.MediaAPIURL, os.Getenv("MEDIA_API_URL"))
	setString(&e.MediaAPIKey, os.Getenv("MEDIA_API_KEY"))
	setString(&e.MediaAPISecret, os.Getenv("MEDIA_API_SECRET"))
	setString(&e.GalleryFolder, os.Getenv("GALLERY_FOLDER"))
	setString(&e.LogLevel, os.Getenv("LOG_LEVEL"))
	setString(&e.LogFormat, os.Getenv("LOG_FORMAT"))

	if d, ok := envDuration("UPSTREAM_TIMEOUT"); ok {
		e.UpstreamTimeout = d
	}
	if d, ok := envDuration("UPSTREAM_RETRY_DELAY"); ok {
		e.UpstreamRetryDelay = d
	}
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("UPSTREAM_RETRIES"))); err == nil && n >= 0 {
		e.UpstreamRetries = n
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")), 64); err == nil && f > 0 {
		e.RateLimitRPS = f
	}
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST"))); err == nil && n > 0 {
		e.RateLimitBurst = n
	}
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		origins := []string{}
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			e.CORSOrigins = origins
		}
	}
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func envDuration(key string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warnf("invalid duration for %s: %q", key, raw)
		return 0, false
	}
	return d, true
}
