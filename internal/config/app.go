package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
)

type AppConfig struct {
	Name           string
	Env            string
	Port           string
	BaseURL        string
	LogLevel       string
	AdminAPIKeys   []string
	RequestTimeout int // seconds
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = ":8080"
		}
		name := os.Getenv("APP_NAME")
		if name == "" {
			name = "talent-match"
		}
		appConfig = &AppConfig{
			Name:           name,
			Env:            env,
			Port:           port,
			BaseURL:        os.Getenv("APP_URL"),
			LogLevel:       os.Getenv("LOG_LEVEL"),
			AdminAPIKeys:   splitList(os.Getenv("ADMIN_API_KEYS")),
			RequestTimeout: intEnv("REQUEST_TIMEOUT_SEC", 10),
		}
	})
	return appConfig
}

// ErrAdminKeysRequired is returned by Validate when a production deployment
// would expose the admin routes without authentication.
var ErrAdminKeysRequired = errors.New("ADMIN_API_KEYS must be set in production")

// AdminAuthDisabled reports whether the admin routes run unauthenticated.
func (c *AppConfig) AdminAuthDisabled() bool {
	return len(c.AdminAPIKeys) == 0
}

// Validate rejects configurations the server must not start with.
func (c *AppConfig) Validate() error {
	if c.Env == "production" && c.AdminAuthDisabled() {
		return ErrAdminKeysRequired
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func intEnv(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
