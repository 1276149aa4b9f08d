// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Middleware

  - WithLogging: structured request/completion logging via log/slog
  - WithDeployKey: shared deployment-key gate (X-Deploy-Key header,
    constant-time compare); every route except /health sits behind it
  - CORS: cross-origin headers and preflight handling for the browser form

# Helpers

  - JSONResponse: write a JSON body with a status code
  - ErrorResponse: write a models.ErrorResponse
  - ParseJSONBody: decode a request body into a struct
*/
package middleware
