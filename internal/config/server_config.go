package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/SafeMPC/onramp-service/internal/util"
	"github.com/rs/zerolog"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	BaseURL                        string
	EnableCORSMiddleware           bool
	EnableLoggerMiddleware         bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableTrailingSlashMiddleware  bool
	EnableMetricsMiddleware        bool
	CORSAllowOrigins               []string
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	LogRequestBody     bool
	LogRequestHeader   bool
	LogRequestQuery    bool
	LogResponseBody    bool
	LogResponseHeader  bool
	LogCaller          bool
	PrettyPrintConsole bool
}

type ManagementServer struct {
	EnableMetrics bool
	MetricsPath   string
}

type StatsServer struct {
	// Seed of the bridge stats RNG, 0 seeds from the clock.
	Seed int64
}

type Server struct {
	Echo       EchoServer
	Logger     LoggerServer
	Management ManagementServer
	CDP        CDP
	Onramp     Onramp
	Stats      StatsServer
}

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// We don't expect that ENV_VARs change while we are running our application or our tests
// (and it would be a bad thing to do anyways with parallel testing).
// Do NOT use os.Setenv / os.Unsetenv in tests utilizing DefaultServiceConfigFromEnv()!
func DefaultServiceConfigFromEnv() Server {
	// An `.env.local` file in your project root can override the currently set ENV variables.
	//
	// We never automatically apply `.env.local` when running "go test" as these ENV variables
	// may be sensitive (e.g. CDP API secrets) and applying them modifies the process-global
	// "os.Env" (not concurrency safe).
	if !util.RunningInTest() {
		DotEnvTryLoad(filepath.Join(util.GetProjectRootDir(), ".env.local"), os.Setenv)
	}

	return Server{
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			BaseURL:                        util.GetEnv("SERVER_ECHO_BASE_URL", "http://localhost:8080"),
			EnableCORSMiddleware:           util.GetEnvAsBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableTrailingSlashMiddleware:  util.GetEnvAsBool("SERVER_ECHO_ENABLE_TRAILING_SLASH_MIDDLEWARE", true),
			EnableMetricsMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_METRICS_MIDDLEWARE", true),
			CORSAllowOrigins:               util.GetEnvAsStringArr("SERVER_ECHO_CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.DebugLevel.String())),
			RequestLevel:       util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())),
			LogRequestBody:     util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_BODY", false),
			LogRequestHeader:   util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_HEADER", false),
			LogRequestQuery:    util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_QUERY", false),
			LogResponseBody:    util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_BODY", false),
			LogResponseHeader:  util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_HEADER", false),
			LogCaller:          util.GetEnvAsBool("SERVER_LOGGER_LOG_CALLER", false),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Management: ManagementServer{
			EnableMetrics: util.GetEnvAsBool("SERVER_MANAGEMENT_ENABLE_METRICS", true),
			MetricsPath:   util.GetEnv("SERVER_MANAGEMENT_METRICS_PATH", "/metrics"),
		},
		CDP: CDP{
			BaseURL:        util.GetEnv("CDP_BASE_URL", DefaultCDPBaseURL),
			TokenPath:      util.GetEnv("CDP_TOKEN_PATH", DefaultCDPTokenPath),
			ProjectID:      util.GetEnv("CDP_PROJECT_ID", ""),
			OrganizationID: util.GetEnv("CDP_ORGANIZATION_ID", ""),
			APIKeyID:       util.GetEnv("CDP_API_KEY", ""),
			APISecret:      util.GetEnv("CDP_API_SECRET", ""),
			KeyName:        util.GetEnv("CDP_KEY_NAME", ""),
			KeyFile:        util.GetEnv("CDP_KEY_FILE", filepath.Join(util.GetProjectRootDir(), "cdp_api_key.json")),
			RequestTimeout: util.GetEnvAsDuration("CDP_REQUEST_TIMEOUT", 10*time.Second),
		},
		Onramp: Onramp{
			DefaultAddress:     util.GetEnv("ONRAMP_DEFAULT_ADDRESS", DefaultOperatorAddress),
			DefaultBlockchains: util.GetEnvAsStringArr("ONRAMP_DEFAULT_BLOCKCHAINS", DefaultBlockchains()),
			DefaultAssets:      util.GetEnvAsStringArr("ONRAMP_DEFAULT_ASSETS", DefaultAssets()),
		},
		Stats: StatsServer{
			Seed: int64(util.GetEnvAsInt("SERVER_STATS_SEED", 0)),
		},
	}
}
