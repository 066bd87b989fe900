package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the campus
// events service.
type Config struct {
	HTTPPort       int
	SQLiteDSN      string
	TokenSecret    string
	TokenTTL       time.Duration
	EventListLimit int
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to sensible defaults; missing required values and
// unparseable entries are reported together so operators can fix a deployment
// in one pass.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:       8080,
		SQLiteDSN:      "file:campus-events.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		TokenTTL:       72 * time.Hour,
		EventListLimit: 10,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("CAMPUS_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "CAMPUS_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("CAMPUS_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if secret := strings.TrimSpace(os.Getenv("CAMPUS_TOKEN_SECRET")); secret == "" {
		missing = append(missing, "CAMPUS_TOKEN_SECRET")
	} else {
		cfg.TokenSecret = secret
	}

	if ttlValue := strings.TrimSpace(os.Getenv("CAMPUS_TOKEN_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "CAMPUS_TOKEN_TTL")
		} else {
			cfg.TokenTTL = ttl
		}
	}

	if limitValue := strings.TrimSpace(os.Getenv("CAMPUS_EVENT_LIST_LIMIT")); limitValue != "" {
		limit, err := strconv.Atoi(limitValue)
		if err != nil || limit <= 0 {
			invalid = append(invalid, "CAMPUS_EVENT_LIST_LIMIT")
		} else {
			cfg.EventListLimit = limit
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
