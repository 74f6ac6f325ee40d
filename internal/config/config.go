package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/junseong2im/Esports/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the client.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level

	GatewayBaseURL               string
	GatewayTimeout               time.Duration
	GatewayMaxRetries            int
	GatewayRetryDelay            time.Duration
	GatewayRateLimit             float64
	GatewayRateBurst             int
	GatewayCircuitEnabled        bool
	GatewayCircuitFailureCount   int
	GatewayCircuitOpenTimeout    time.Duration
	GatewayCircuitHalfOpenMaxReq int

	SettleDelay  time.Duration
	PollAttempts int
	PollDelay    time.Duration
	WarmWorkers  int

	CacheTTL time.Duration

	ExcludeLeagueSubstring string
	SeasonYear             int
	PageSize               int

	WebhookTimeout time.Duration

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	PprofEnabled bool
	PprofAddr    string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	gatewayTimeout, err := time.ParseDuration(getEnv("GATEWAY_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEWAY_TIMEOUT: %w", err)
	}
	if gatewayTimeout <= 0 {
		return Config{}, fmt.Errorf("GATEWAY_TIMEOUT must be > 0")
	}
	gatewayMaxRetries, err := getEnvAsInt("GATEWAY_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEWAY_MAX_RETRIES: %w", err)
	}
	if gatewayMaxRetries < 0 {
		return Config{}, fmt.Errorf("GATEWAY_MAX_RETRIES must be >= 0")
	}
	gatewayRetryDelay, err := time.ParseDuration(getEnv("GATEWAY_RETRY_DELAY", "2s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEWAY_RETRY_DELAY: %w", err)
	}
	if gatewayRetryDelay <= 0 {
		return Config{}, fmt.Errorf("GATEWAY_RETRY_DELAY must be > 0")
	}
	gatewayRateLimit, err := getEnvAsFloat("GATEWAY_RATE_LIMIT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEWAY_RATE_LIMIT: %w", err)
	}
	if gatewayRateLimit < 0 {
		return Config{}, fmt.Errorf("GATEWAY_RATE_LIMIT must be >= 0")
	}
	gatewayRateBurst, err := getEnvAsInt("GATEWAY_RATE_BURST", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEWAY_RATE_BURST: %w", err)
	}
	if gatewayRateBurst < 1 {
		return Config{}, fmt.Errorf("GATEWAY_RATE_BURST must be >= 1")
	}

	gatewayCircuitEnabled, err := strconv.ParseBool(getEnv("GATEWAY_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEWAY_CIRCUIT_ENABLED: %w", err)
	}
	gatewayCircuitFailureCount, err := getEnvAsInt("GATEWAY_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEWAY_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if gatewayCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("GATEWAY_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	gatewayCircuitOpenTimeout, err := time.ParseDuration(getEnv("GATEWAY_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEWAY_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if gatewayCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("GATEWAY_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	gatewayCircuitHalfOpenMaxReq, err := getEnvAsInt("GATEWAY_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEWAY_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if gatewayCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("GATEWAY_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	settleDelay, err := time.ParseDuration(getEnv("CRAWL_SETTLE_DELAY", "4s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CRAWL_SETTLE_DELAY: %w", err)
	}
	if settleDelay <= 0 {
		return Config{}, fmt.Errorf("CRAWL_SETTLE_DELAY must be > 0")
	}
	pollAttempts, err := getEnvAsInt("CRAWL_POLL_ATTEMPTS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse CRAWL_POLL_ATTEMPTS: %w", err)
	}
	if pollAttempts < 1 {
		return Config{}, fmt.Errorf("CRAWL_POLL_ATTEMPTS must be >= 1")
	}
	pollDelay, err := time.ParseDuration(getEnv("CRAWL_POLL_DELAY", "2500ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CRAWL_POLL_DELAY: %w", err)
	}
	if pollDelay <= 0 {
		return Config{}, fmt.Errorf("CRAWL_POLL_DELAY must be > 0")
	}
	warmWorkers, err := getEnvAsInt("WARM_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse WARM_WORKERS: %w", err)
	}
	if warmWorkers < 1 {
		return Config{}, fmt.Errorf("WARM_WORKERS must be >= 1")
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	seasonYear, err := getEnvAsInt("SEASON_YEAR", time.Now().UTC().Year())
	if err != nil {
		return Config{}, fmt.Errorf("parse SEASON_YEAR: %w", err)
	}
	if seasonYear < 0 {
		return Config{}, fmt.Errorf("SEASON_YEAR must be >= 0")
	}
	pageSize, err := getEnvAsInt("PAGE_SIZE", 30)
	if err != nil {
		return Config{}, fmt.Errorf("parse PAGE_SIZE: %w", err)
	}
	if pageSize < 1 {
		return Config{}, fmt.Errorf("PAGE_SIZE must be >= 1")
	}

	webhookTimeout, err := time.ParseDuration(getEnv("WEBHOOK_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WEBHOOK_TIMEOUT: %w", err)
	}
	if webhookTimeout <= 0 {
		return Config{}, fmt.Errorf("WEBHOOK_TIMEOUT must be > 0")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                       appEnv,
		ServiceName:                  getEnv("APP_SERVICE_NAME", "lckwatch"),
		ServiceVersion:               getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		GatewayBaseURL:               strings.TrimSpace(getEnv("GATEWAY_BASE_URL", "https://esportscalender-nzpn.onrender.com")),
		GatewayTimeout:               gatewayTimeout,
		GatewayMaxRetries:            gatewayMaxRetries,
		GatewayRetryDelay:            gatewayRetryDelay,
		GatewayRateLimit:             gatewayRateLimit,
		GatewayRateBurst:             gatewayRateBurst,
		GatewayCircuitEnabled:        gatewayCircuitEnabled,
		GatewayCircuitFailureCount:   gatewayCircuitFailureCount,
		GatewayCircuitOpenTimeout:    gatewayCircuitOpenTimeout,
		GatewayCircuitHalfOpenMaxReq: gatewayCircuitHalfOpenMaxReq,
		SettleDelay:                  settleDelay,
		PollAttempts:                 pollAttempts,
		PollDelay:                    pollDelay,
		WarmWorkers:                  warmWorkers,
		CacheTTL:                     cacheTTL,
		ExcludeLeagueSubstring:       strings.TrimSpace(getEnv("EXCLUDE_LEAGUE_SUBSTRING", "CL")),
		SeasonYear:                   seasonYear,
		PageSize:                     pageSize,
		WebhookTimeout:               webhookTimeout,
		UptraceEnabled:               uptraceEnabled,
		UptraceDSN:                   uptraceDSN,
		UptraceLogsEnabled:           uptraceLogsEnabled,
		PprofEnabled:                 pprofEnabled,
		PprofAddr:                    pprofAddr,
		PyroscopeEnabled:             pyroscopeEnabled,
		PyroscopeServerAddress:       pyroscopeServerAddress,
		PyroscopeAuthToken:           strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:       strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:          pyroscopeUploadRate,
	}
	if cfg.GatewayBaseURL == "" {
		return Config{}, fmt.Errorf("GATEWAY_BASE_URL cannot be empty")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
