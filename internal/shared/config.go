package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	AmadeusBase   string
	AmadeusID     string
	AmadeusSecret string
	AmadeusRPS    int

	HotelBatchWorkers int
	CacheTTL          time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:            env("APP_ENV", "prod"),
		HTTPAddr:          env("HTTP_ADDR", ":8080"),
		MetricsAddr:       env("METRICS_ADDR", ":9100"),
		RedisAddr:         env("REDIS_ADDR", "localhost:6379"),
		RedisPass:         env("REDIS_PASSWORD", ""),
		RedisDB:           atoi("REDIS_DB", 0),
		AmadeusBase:       env("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		AmadeusID:         env("AMADEUS_CLIENT_ID", ""),
		AmadeusSecret:     env("AMADEUS_CLIENT_SECRET", ""),
		AmadeusRPS:        atoi("AMADEUS_RPS", 5),
		HotelBatchWorkers: atoi("HOTEL_BATCH_WORKERS", 3),
		CacheTTL:          time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
	}
	if c.AmadeusID == "" || c.AmadeusSecret == "" {
		log.Warn().Msg("AMADEUS_CLIENT_ID / AMADEUS_CLIENT_SECRET not set; upstream calls will fail and autocomplete will serve fallback data")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
