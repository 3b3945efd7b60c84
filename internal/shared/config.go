package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	WeatherBase     string
	WeatherKey      string
	WeatherCacheTTL time.Duration
	GeocodingBase   string
	GeocodingKey    string
	ProfanityBase   string
	GatewayRPS      int

	CloudinaryBase   string
	CloudinaryCloud  string
	CloudinaryKey    string
	CloudinarySecret string
	CloudinaryFolder string

	JWTSecret string
	JWTTTL    time.Duration

	Workers int
}

// Load reads the environment. Variables from a .env file in the working
// directory are applied first without overriding the real environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg(".env could not be loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),

		WeatherBase:     env("WEATHER_BASE_URL", "https://api.openweathermap.org"),
		WeatherKey:      env("WEATHER_API_KEY", ""),
		WeatherCacheTTL: time.Duration(atoi("WEATHER_CACHE_TTL_SECONDS", 600)) * time.Second,
		GeocodingBase:   env("GEOCODING_BASE_URL", "https://api.opencagedata.com"),
		GeocodingKey:    env("GEOCODING_API_KEY", ""),
		ProfanityBase:   env("PROFANITY_BASE_URL", "https://www.purgomalum.com"),
		GatewayRPS:      atoi("GATEWAY_RPS", 5),

		CloudinaryBase:   env("CLOUDINARY_BASE_URL", "https://api.cloudinary.com"),
		CloudinaryCloud:  env("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryKey:    env("CLOUDINARY_API_KEY", ""),
		CloudinarySecret: env("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder: env("CLOUDINARY_FOLDER", ""),

		JWTSecret: env("JWT_SECRET", ""),
		JWTTTL:    time.Duration(atoi("JWT_TTL_HOURS", 24)) * time.Hour,

		Workers: atoi("GEOSYNC_WORKERS", 4),
	}
	for k, v := range map[string]string{
		"WEATHER_API_KEY":       c.WeatherKey,
		"GEOCODING_API_KEY":     c.GeocodingKey,
		"CLOUDINARY_API_SECRET": c.CloudinarySecret,
		"JWT_SECRET":            c.JWTSecret,
	} {
		if v == "" {
			log.Warn().Str("key", k).Msg("empty configuration value")
		}
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
