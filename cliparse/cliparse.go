// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	DeployKey    string
	AdminSecret  string
	RubricPath   string
	SessionTTL   time.Duration
}

// ParseFlags validates flags and fills defaults from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var sessionTTL string

	fs := flag.NewFlagSet("jury-server", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.RubricPath, "r", "", "Path to rubric YAML")
	fs.StringVar(&sessionTTL, "session-ttl", "", "Session token lifetime (Go duration)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.DeployKey, "deploy-key", "", "Shared deployment key (prefer env)")
	fs.StringVar(&cfg.AdminSecret, "admin-secret", "", "Administrator secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8090 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.RubricPath == "" {
		cfg.RubricPath = os.Getenv("RUBRIC_PATH")
		if cfg.RubricPath == "" {
			cfg.RubricPath = "rubric.yaml"
		}
	}

	if sessionTTL == "" {
		sessionTTL = os.Getenv("SESSION_TTL")
	}
	if sessionTTL == "" {
		cfg.SessionTTL = 12 * time.Hour
	} else {
		ttl, err := time.ParseDuration(sessionTTL)
		if err != nil || ttl <= 0 {
			return Config{}, errors.New("invalid SESSION_TTL duration")
		}
		cfg.SessionTTL = ttl
	}

	// Secrets - MUST be provided
	if cfg.DeployKey == "" {
		cfg.DeployKey = os.Getenv("DEPLOY_KEY")
	}
	if cfg.DeployKey == "" {
		return Config{}, errors.New("DEPLOY_KEY required")
	}

	if cfg.AdminSecret == "" {
		cfg.AdminSecret = os.Getenv("ADMIN_SECRET")
	}
	if cfg.AdminSecret == "" {
		return Config{}, errors.New("ADMIN_SECRET required")
	}

	return cfg, nil
}
