package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/match-forecast/internal/platform/logging"
	"github.com/riskibarqy/match-forecast/internal/platform/resilience"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level
	LogFormat          logging.Format

	FootballAPIKey                string
	FootballBaseURL               string
	FootballCompetition           string
	FootballTimeout               time.Duration
	FootballMaxRetries            int
	FootballRateLimitMargin       time.Duration
	FootballRateLimitFallback     time.Duration
	FootballCircuitEnabled        bool
	FootballCircuitFailureCount   int
	FootballCircuitOpenTimeout    time.Duration
	FootballCircuitHalfOpenMaxReq int

	FormMatchLimit       int
	BatchMatchLimit      int
	BatchInterMatchDelay time.Duration
	TeamDirectoryTTL     time.Duration

	UptraceEnabled         bool
	UptraceDSN             string
	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logFormatDefault := string(logging.FormatConsole)
	if appEnv != EnvDev {
		logFormatDefault = string(logging.FormatJSON)
	}
	logFormat, err := parseLogFormat(getEnv("LOG_FORMAT", logFormatDefault))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	// A matchday batch paces provider calls, so responses can take minutes.
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	footballAPIKey := strings.TrimSpace(getEnv("FOOTBALL_API_KEY", ""))
	if footballAPIKey == "" {
		return Config{}, fmt.Errorf("FOOTBALL_API_KEY is required")
	}
	footballTimeout, err := time.ParseDuration(getEnv("FOOTBALL_DATA_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_TIMEOUT: %w", err)
	}
	if footballTimeout <= 0 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_TIMEOUT must be > 0")
	}
	footballMaxRetries, err := getEnvAsInt("FOOTBALL_DATA_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_MAX_RETRIES: %w", err)
	}
	if footballMaxRetries < 1 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_MAX_RETRIES must be >= 1")
	}
	footballRateLimitMargin, err := time.ParseDuration(getEnv("FOOTBALL_DATA_RATE_LIMIT_MARGIN", "2s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_RATE_LIMIT_MARGIN: %w", err)
	}
	if footballRateLimitMargin <= 0 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_RATE_LIMIT_MARGIN must be > 0")
	}
	footballRateLimitFallback, err := time.ParseDuration(getEnv("FOOTBALL_DATA_RATE_LIMIT_FALLBACK", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_RATE_LIMIT_FALLBACK: %w", err)
	}
	if footballRateLimitFallback <= 0 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_RATE_LIMIT_FALLBACK must be > 0")
	}
	circuitDefaults := resilience.DefaultCircuitBreakerConfig()
	footballCircuitEnabled, err := strconv.ParseBool(getEnv("FOOTBALL_DATA_CIRCUIT_ENABLED", strconv.FormatBool(circuitDefaults.Enabled)))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_CIRCUIT_ENABLED: %w", err)
	}
	footballCircuitFailureCount, err := getEnvAsInt("FOOTBALL_DATA_CIRCUIT_FAILURE_COUNT", circuitDefaults.FailureThreshold)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if footballCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	footballCircuitOpenTimeout, err := time.ParseDuration(getEnv("FOOTBALL_DATA_CIRCUIT_OPEN_TIMEOUT", circuitDefaults.OpenTimeout.String()))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if footballCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	footballCircuitHalfOpenMaxReq, err := getEnvAsInt("FOOTBALL_DATA_CIRCUIT_HALF_OPEN_MAX_REQ", circuitDefaults.HalfOpenMaxReq)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if footballCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	formMatchLimit, err := getEnvAsInt("FORM_MATCH_LIMIT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FORM_MATCH_LIMIT: %w", err)
	}
	if formMatchLimit < 1 {
		return Config{}, fmt.Errorf("FORM_MATCH_LIMIT must be >= 1")
	}
	batchMatchLimit, err := getEnvAsInt("BATCH_MATCH_LIMIT", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse BATCH_MATCH_LIMIT: %w", err)
	}
	if batchMatchLimit < 1 {
		return Config{}, fmt.Errorf("BATCH_MATCH_LIMIT must be >= 1")
	}
	batchInterMatchDelay, err := time.ParseDuration(getEnv("BATCH_INTER_MATCH_DELAY", "6s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BATCH_INTER_MATCH_DELAY: %w", err)
	}
	if batchInterMatchDelay < 0 {
		return Config{}, fmt.Errorf("BATCH_INTER_MATCH_DELAY must be >= 0")
	}
	teamDirectoryTTL, err := time.ParseDuration(getEnv("TEAM_DIRECTORY_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse TEAM_DIRECTORY_TTL: %w", err)
	}
	if teamDirectoryTTL <= 0 {
		return Config{}, fmt.Errorf("TEAM_DIRECTORY_TTL must be > 0")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
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
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "match-forecast-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		LogLevel:           logging.ParseLevel(getEnv("LOG_LEVEL", "info")),
		LogFormat:          logFormat,

		FootballAPIKey:                footballAPIKey,
		FootballBaseURL:               strings.TrimSpace(getEnv("FOOTBALL_DATA_BASE_URL", "https://api.football-data.org/v4")),
		FootballCompetition:           strings.ToUpper(strings.TrimSpace(getEnv("FOOTBALL_DATA_COMPETITION", "PL"))),
		FootballTimeout:               footballTimeout,
		FootballMaxRetries:            footballMaxRetries,
		FootballRateLimitMargin:       footballRateLimitMargin,
		FootballRateLimitFallback:     footballRateLimitFallback,
		FootballCircuitEnabled:        footballCircuitEnabled,
		FootballCircuitFailureCount:   footballCircuitFailureCount,
		FootballCircuitOpenTimeout:    footballCircuitOpenTimeout,
		FootballCircuitHalfOpenMaxReq: footballCircuitHalfOpenMaxReq,

		FormMatchLimit:       formMatchLimit,
		BatchMatchLimit:      batchMatchLimit,
		BatchInterMatchDelay: batchInterMatchDelay,
		TeamDirectoryTTL:     teamDirectoryTTL,

		UptraceEnabled:         uptraceEnabled,
		UptraceDSN:             uptraceDSN,
		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
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

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
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

func parseLogFormat(v string) (logging.Format, error) {
	switch format := logging.Format(strings.ToLower(strings.TrimSpace(v))); format {
	case logging.FormatJSON, logging.FormatConsole:
		return format, nil
	default:
		return "", fmt.Errorf("invalid LOG_FORMAT %q: valid values are %s, %s", v, logging.FormatJSON, logging.FormatConsole)
	}
}
