// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command exchange starts the AleutianExchange HTTP server.
//
// This is the main entry point for the containerized exchange service.
// It reads configuration from environment variables and starts the server.
//
// # Environment Variables
//
//   - EXCHANGE_PORT: HTTP server port (default: 12310)
//   - POSTGRES_DSN: Postgres connection string (optional; in-memory store if unset)
//   - ASSIST_ENABLED: enable the AI assist pipeline - true/false (default: false)
//   - OPENAI_API_KEY / OPENAI_MODEL: model backend for the assist pipeline
//   - AUTH_JWT_SECRET: HS256 secret for token validation (optional; no-op auth if unset)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OpenTelemetry collector (default: aleutian-otel-collector:4317)
//
// # Usage
//
//	# Build
//	go build -o exchange ./cmd/exchange
//
//	# Run
//	./exchange
//
//	# Or via container
//	podman-compose up exchange
package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/AleutianAI/AleutianExchange/services/exchange"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Build configuration from environment variables
	cfg := exchange.Config{
		Port:          getEnvInt("EXCHANGE_PORT", 12310),
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		AssistEnabled: getEnvBool("ASSIST_ENABLED", false),
		JWTSecret:     os.Getenv("AUTH_JWT_SECRET"),
		OTelEndpoint:  getEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", "aleutian-otel-collector:4317"),
	}

	slog.Info("Starting exchange",
		"port", cfg.Port,
		"postgres_configured", cfg.PostgresDSN != "",
		"assist_enabled", cfg.AssistEnabled,
	)

	// Create the service with default (no-op) extension options.
	// Deployments with an identity service pass custom ServiceOptions here.
	svc, err := exchange.New(cfg, nil)
	if err != nil {
		log.Fatalf("Failed to create exchange service: %v", err)
	}

	// Run the server (blocks until shutdown)
	if err := svc.Run(); err != nil {
		log.Fatalf("Exchange error: %v", err)
	}
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBool returns the environment variable as bool or a default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
