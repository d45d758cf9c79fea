// Package env loads process configuration from the environment and
// optional dotenv files.
package env

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Variables read by the CLI.
const (
	KeyAppEnv      = "APP_ENV"
	KeyLogLevel    = "TVFILTER_LOG_LEVEL"
	KeyLogDir      = "TVFILTER_LOG_DIR"
	KeySettings    = "TVFILTER_SETTINGS"
	KeyAppURL      = "TVFILTER_URL"
	KeyHeadless    = "TVFILTER_HEADLESS"
	KeyMetricsAddr = "TVFILTER_METRICS_ADDR"
	KeyNavTimeout  = "TVFILTER_NAV_TIMEOUT"
)

type EnvService struct {
	appEnv string
	loaded []string
}

// NewEnvService loads dir/.env and then dir/.env.$APP_ENV, the latter
// overriding the former. Missing files are skipped.
func NewEnvService(dir string) *EnvService {
	appEnv := os.Getenv(KeyAppEnv)
	if appEnv == "" {
		appEnv = "dev"
	}

	e := &EnvService{appEnv: appEnv}

	base := filepath.Join(dir, ".env")
	if err := godotenv.Load(base); err == nil {
		e.loaded = append(e.loaded, base)
	}

	envFile := filepath.Join(dir, fmt.Sprintf(".env.%s", appEnv))
	if err := godotenv.Overload(envFile); err == nil {
		e.loaded = append(e.loaded, envFile)
	}

	return e
}

func (e *EnvService) AppEnv() string {
	return e.appEnv
}

// Loaded lists the dotenv files that were read.
func (e *EnvService) Loaded() []string {
	return e.loaded
}

func (e *EnvService) Get(key string) string {
	return os.Getenv(key)
}

func (e *EnvService) GetDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func (e *EnvService) MustGet(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("env %s is missing", key)
	}
	return val, nil
}

func (e *EnvService) GetBool(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (e *EnvService) GetInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (e *EnvService) GetDuration(key string, defaultValue time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
