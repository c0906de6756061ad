package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"

	SourceFixtures = "fixtures"
	SourceUpstream = "upstream"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	StoreDriver    string
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	CacheTTL       time.Duration
	RequestTimeout time.Duration

	UpstreamBase string
	UpstreamKey  string
	UpstreamChan string
	UpstreamRPS  int

	ImportSource   string
	ImportCodes    []string
	ImportWorkers  int
	ImportInterval time.Duration
}

// Load reads the environment, after an optional .env file in the working directory.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be read")
	}
	return fromEnv()
}

func fromEnv() Config {
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ":9100"),
		StoreDriver:    strings.ToLower(env("STORE_DRIVER", StoreMySQL)),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/opera?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		RedisPass:      env("REDIS_PASS", ""),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SEC", 900)) * time.Second,
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SEC", 15)) * time.Second,
		UpstreamBase:   env("UPSTREAM_BASE_URL", ""),
		UpstreamKey:    env("UPSTREAM_APP_KEY", ""),
		UpstreamChan:   env("UPSTREAM_CHANNEL", "WEB"),
		UpstreamRPS:    atoi("UPSTREAM_RPS", 5),
		ImportSource:   strings.ToLower(env("IMPORT_SOURCE", SourceFixtures)),
		ImportCodes:    list("IMPORT_HOTEL_CODES"),
		ImportWorkers:  atoi("IMPORT_WORKERS", 4),
		ImportInterval: duration("IMPORT_INTERVAL", 0),
	}
	if c.StoreDriver != StoreMySQL && c.StoreDriver != StoreMemory {
		log.Warn().Str("driver", c.StoreDriver).Msg("unknown STORE_DRIVER, using mysql")
		c.StoreDriver = StoreMySQL
	}
	if c.ImportSource == SourceUpstream && c.UpstreamKey == "" {
		log.Warn().Msg("UPSTREAM_APP_KEY is empty")
	}
	if c.ImportWorkers < 1 {
		c.ImportWorkers = 1
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

func duration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not a duration, using default")
	}
	return def
}

func list(k string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(k), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
