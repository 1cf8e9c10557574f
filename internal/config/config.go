package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
)

const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"

	LockBackendPostgres = "postgres"
	LockBackendRedis    = "redis"
	LockBackendMemory   = "memory"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	StorageBackend string
	DBURL          string
	DBMaxOpenConns int

	LockBackend   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LockTTL       time.Duration

	RiotAPIToken              string
	RiotBaseURL               string
	RiotTimeout               time.Duration
	RiotMaxThrottleRetries    int
	RiotRegionsFile           string
	RiotCircuitEnabled        bool
	RiotCircuitFailureCount   int
	RiotCircuitOpenTimeout    time.Duration
	RiotCircuitHalfOpenMaxReq int

	ImportMaxWorkers   int
	FeedPageSize       int
	FeedMaxConcurrency int
	FeedPollInterval   time.Duration
	FeedLockNamespace  int32
	FollowCacheTTL     time.Duration

	InternalJobToken string

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	PprofEnabled               bool
	PprofAddr                  string
}

// Load reads the environment, after merging an optional dotenv file named
// by ENV_FILE (default .env). Variables already set win over the file.
func Load() (Config, error) {
	if err := loadDotEnv(getEnv("ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := parsePositiveDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	// Covers a synchronous feed refresh.
	writeTimeout, err := parsePositiveDuration("APP_WRITE_TIMEOUT", "120s")
	if err != nil {
		return Config{}, err
	}

	storageBackend, err := parseChoice("STORAGE_BACKEND", StorageBackendPostgres, StorageBackendPostgres, StorageBackendMemory)
	if err != nil {
		return Config{}, err
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storageBackend == StorageBackendPostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_BACKEND=%s", StorageBackendPostgres)
	}
	dbMaxOpenConns, err := parseMinInt("DB_MAX_OPEN_CONNS", 20, 1)
	if err != nil {
		return Config{}, err
	}

	lockDefault := LockBackendPostgres
	if storageBackend == StorageBackendMemory {
		lockDefault = LockBackendMemory
	}
	lockBackend, err := parseChoice("LOCK_BACKEND", lockDefault, LockBackendPostgres, LockBackendRedis, LockBackendMemory)
	if err != nil {
		return Config{}, err
	}
	if lockBackend == LockBackendPostgres && storageBackend != StorageBackendPostgres {
		return Config{}, fmt.Errorf("LOCK_BACKEND=%s requires STORAGE_BACKEND=%s", LockBackendPostgres, StorageBackendPostgres)
	}
	redisAddr := strings.TrimSpace(getEnv("REDIS_ADDR", ""))
	if lockBackend == LockBackendRedis && redisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR is required when LOCK_BACKEND=%s", LockBackendRedis)
	}
	redisDB, err := parseMinInt("REDIS_DB", 0, 0)
	if err != nil {
		return Config{}, err
	}
	lockTTL, err := parsePositiveDuration("LOCK_TTL", "10m")
	if err != nil {
		return Config{}, err
	}

	riotToken := strings.TrimSpace(getEnv("RIOT_API_TOKEN", ""))
	if appEnv == EnvProd && riotToken == "" {
		return Config{}, fmt.Errorf("RIOT_API_TOKEN is required when APP_ENV=%s", EnvProd)
	}
	riotTimeout, err := parsePositiveDuration("RIOT_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	riotMaxThrottleRetries, err := parseMinInt("RIOT_MAX_THROTTLE_RETRIES", 7, 0)
	if err != nil {
		return Config{}, err
	}
	riotCircuitEnabled, err := parseBool("RIOT_CIRCUIT_ENABLED", "true")
	if err != nil {
		return Config{}, err
	}
	riotCircuitFailureCount, err := parseMinInt("RIOT_CIRCUIT_FAILURE_COUNT", 5, 1)
	if err != nil {
		return Config{}, err
	}
	riotCircuitOpenTimeout, err := parsePositiveDuration("RIOT_CIRCUIT_OPEN_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}
	riotCircuitHalfOpenMaxReq, err := parseMinInt("RIOT_CIRCUIT_HALF_OPEN_MAX_REQ", 1, 1)
	if err != nil {
		return Config{}, err
	}

	importMaxWorkers, err := parseMinInt("IMPORT_MAX_WORKERS", 10, 1)
	if err != nil {
		return Config{}, err
	}
	feedPageSize, err := parseMinInt("FEED_PAGE_SIZE", 20, 1)
	if err != nil {
		return Config{}, err
	}
	if feedPageSize > 100 {
		return Config{}, fmt.Errorf("FEED_PAGE_SIZE must be <= 100")
	}
	feedMaxConcurrency, err := parseMinInt("FEED_MAX_CONCURRENCY", 4, 1)
	if err != nil {
		return Config{}, err
	}
	feedPollInterval, err := parsePositiveDuration("FEED_POLL_INTERVAL", "500ms")
	if err != nil {
		return Config{}, err
	}
	feedLockNamespace, err := strconv.ParseInt(getEnv("FEED_LOCK_NAMESPACE", "1001"), 10, 32)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_LOCK_NAMESPACE: %w", err)
	}
	followCacheTTL, err := parseDuration("FOLLOW_CACHE_TTL", "30s")
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := parseBool("UPTRACE_ENABLED", "false")
	if err != nil {
		return Config{}, err
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := parseBool("PPROF_ENABLED", "false")
	if err != nil {
		return Config{}, err
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))

	pyroscopeEnabled, err := parseBool("PYROSCOPE_ENABLED", "false")
	if err != nil {
		return Config{}, err
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := parsePositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "lol-match-history"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		LogLevel:                   logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		StorageBackend:             storageBackend,
		DBURL:                      dbURL,
		DBMaxOpenConns:             dbMaxOpenConns,
		LockBackend:                lockBackend,
		RedisAddr:                  redisAddr,
		RedisPassword:              getEnv("REDIS_PASSWORD", ""),
		RedisDB:                    redisDB,
		LockTTL:                    lockTTL,
		RiotAPIToken:               riotToken,
		RiotBaseURL:                strings.TrimSpace(getEnv("RIOT_BASE_URL", "")),
		RiotTimeout:                riotTimeout,
		RiotMaxThrottleRetries:     riotMaxThrottleRetries,
		RiotRegionsFile:            strings.TrimSpace(getEnv("RIOT_REGIONS_FILE", "")),
		RiotCircuitEnabled:         riotCircuitEnabled,
		RiotCircuitFailureCount:    riotCircuitFailureCount,
		RiotCircuitOpenTimeout:     riotCircuitOpenTimeout,
		RiotCircuitHalfOpenMaxReq:  riotCircuitHalfOpenMaxReq,
		ImportMaxWorkers:           importMaxWorkers,
		FeedPageSize:               feedPageSize,
		FeedMaxConcurrency:         feedMaxConcurrency,
		FeedPollInterval:           feedPollInterval,
		FeedLockNamespace:          int32(feedLockNamespace),
		FollowCacheTTL:             followCacheTTL,
		InternalJobToken:           strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	if cfg.LockBackend == LockBackendRedis && cfg.LockTTL <= cfg.WriteTimeout {
		return Config{}, fmt.Errorf("LOCK_TTL must be > APP_WRITE_TIMEOUT so a lease outlives a synchronous refresh")
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func parseBool(key, fallback string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

func parseDuration(key, fallback string) (time.Duration, error) {
	v, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	v, err := parseDuration(key, fallback)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return v, nil
}

func parseMinInt(key string, fallback, minimum int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out < minimum {
		return 0, fmt.Errorf("%s must be >= %d", key, minimum)
	}
	return out, nil
}

func parseChoice(key, fallback string, allowed ...string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, fallback)))
	for _, candidate := range allowed {
		if value == candidate {
			return value, nil
		}
	}
	return "", fmt.Errorf("invalid %s %q: valid values are %s", key, value, strings.Join(allowed, ", "))
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
