// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8090)
  - DatabaseURL: connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - DeployKey: shared deployment secret (required)
  - AdminSecret: administrator secret for reset/export/results (required)
  - RubricPath: rubric YAML file (default: rubric.yaml)
  - SessionTTL: session token lifetime (default: 12h)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-r             Rubric YAML path
	--session-ttl  Session token lifetime
	--deploy-key   Deployment key (prefer env)
	--admin-secret Administrator secret (prefer env)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	RUBRIC_PATH   → -r
	SESSION_TTL   → --session-ttl
	DEPLOY_KEY    → --deploy-key
	ADMIN_SECRET  → --admin-secret

CLI flags take precedence over environment variables. main loads a local
.env file first via godotenv, so a dev checkout can keep its secrets there.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - DEPLOY_KEY must be provided
  - ADMIN_SECRET must be provided
*/
package cliparse
