// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the jury scoring API server.

The service lets independent jurors score a fixed set of project groups
against a fixed rubric from any device. All durable state lives in an
append-only evaluation record log; concurrent, unacknowledged writes from
any number of browser sessions are merged into one canonical state per
(juror, group) pair on every read. Identity is a deterministic hash of
name and organization, gated by a server-issued 4-digit PIN with lockout.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=jury.db DEPLOY_KEY=... ADMIN_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8090 -d jury.db -r rubric.yaml

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite path or PostgreSQL connection string
  - DEPLOY_KEY (--deploy-key): shared deployment secret
  - ADMIN_SECRET (--admin-secret): administrator secret

Optional settings:

  - PORT (-p): server port (default: 8090)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - RUBRIC_PATH (-r): rubric YAML file (default: rubric.yaml)
  - SESSION_TTL (--session-ttl): session lifetime (default: 12h)

A local .env file is loaded first for development.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - identity: deterministic juror id resolution
  - rubric: static group/criteria configuration (YAML)
  - db: schema creation and the append-only record log
  - reconcile: merge of log records into canonical per-key state
  - submission: record lifecycle state machine
  - handlers: HTTP request handlers (credentials, records, admin)
  - router: route definitions using Go 1.22+ routing
  - middleware: deploy-key gate, CORS, logging, JSON helpers
  - auth: PIN, session token, and shared-secret utilities
  - syncer: client-side write scheduler (debounce + periodic re-append)
  - cliparse: configuration parsing
  - models: request/response types

See package documentation for each component.
*/
package main
