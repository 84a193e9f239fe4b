// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package exchange provides the AleutianExchange knowledge-sharing
// service: questions, answers, voting, accepted answers, notifications,
// and an optional AI assist pipeline.
//
// # Deployment Modes
//
// With POSTGRES_DSN configured, all state lives in Postgres. Without it
// the service runs in lightweight mode on an in-memory store, which
// suits demos and single-user setups where persistence across restarts
// is not needed.
//
// # Extension Points
//
// The service supports dependency injection via extensions.ServiceOptions.
// The default AuthProvider accepts every request as a fixed local user;
// deployments with a real identity service supply a JWT provider or a
// custom implementation.
//
// # Usage
//
// Open source (all defaults, in-memory store):
//
//	cfg := exchange.Config{Port: 12310}
//	svc, err := exchange.New(cfg, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(svc.Run())
//
// With custom auth:
//
//	opts := &extensions.ServiceOptions{
//	    AuthProvider: extensions.NewJWTAuthProvider(secret),
//	}
//	svc, err := exchange.New(cfg, opts)
package exchange

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/AleutianAI/AleutianExchange/pkg/extensions"
	"github.com/AleutianAI/AleutianExchange/services/assist"
	"github.com/AleutianAI/AleutianExchange/services/exchange/engine"
	"github.com/AleutianAI/AleutianExchange/services/exchange/routes"
	"github.com/AleutianAI/AleutianExchange/services/exchange/store"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Service is the exchange service lifecycle. Run blocks until the server
// stops; Router exposes the configured engine for integration tests.
type Service interface {
	Run() error
	Router() *gin.Engine
}

// =============================================================================
// Configuration
// =============================================================================

// Config holds exchange service configuration. Zero values take the
// defaults applied by New.
type Config struct {
	// Port is the HTTP server port. Default: 12310
	Port int

	// PostgresDSN is the Postgres connection string. If empty, the
	// service runs in lightweight mode on an in-memory store.
	PostgresDSN string

	// AssistEnabled turns the AI assist pipeline on. The pipeline also
	// requires a model API key at startup; without one the service
	// degrades to assist-unavailable rather than failing.
	AssistEnabled bool

	// JWTSecret enables HS256 token validation when set. If empty, the
	// no-op auth provider is used and every request is the local user.
	JWTSecret string

	// OTelEndpoint is the OpenTelemetry collector endpoint.
	// Default: "aleutian-otel-collector:4317"
	OTelEndpoint string

	// GinMode sets the Gin framework mode ("debug", "release", "test").
	// Default: uses GIN_MODE env var or "debug"
	GinMode string
}

// =============================================================================
// Implementation
// =============================================================================

// service implements Service for production use. All fields are
// read-only after New returns.
type service struct {
	config        Config
	opts          extensions.ServiceOptions
	router        *gin.Engine
	store         store.Store
	pipeline      *assist.Pipeline
	tracerCleanup func(context.Context)
}

// =============================================================================
// Constructor
// =============================================================================

// New creates an exchange Service:
//  1. Applies configuration defaults
//  2. Initializes OpenTelemetry tracing
//  3. Selects the backing store (Postgres or in-memory)
//  4. Wires the assist pipeline if enabled
//  5. Builds the workflow engine and registers routes
//
// If opts is nil, open-source defaults are used. A JWTSecret in cfg
// takes effect only when opts does not already carry an AuthProvider.
func New(cfg Config, opts *extensions.ServiceOptions) (Service, error) {
	s := &service{
		config: applyConfigDefaults(cfg),
	}

	opts = extensions.DefaultOptions(opts)
	if cfg.JWTSecret != "" {
		if _, isNop := opts.AuthProvider.(*extensions.NopAuthProvider); isNop {
			opts.AuthProvider = extensions.NewJWTAuthProvider(cfg.JWTSecret)
			slog.Info("JWT auth enabled")
		}
	}
	s.opts = *opts

	cleanup, err := s.initTracer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}
	s.tracerCleanup = cleanup

	if err := s.initStore(); err != nil {
		s.cleanup()
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	s.initAssist()
	s.initRouter()

	return s, nil
}

// =============================================================================
// Service Interface Methods
// =============================================================================

// Run starts the HTTP server and blocks until it stops.
func (s *service) Run() error {
	defer s.cleanup()

	addr := fmt.Sprintf(":%d", s.config.Port)
	slog.Info("Starting exchange server", "port", s.config.Port)

	return s.router.Run(addr)
}

// Router returns the underlying Gin engine for testing.
func (s *service) Router() *gin.Engine {
	return s.router
}

// =============================================================================
// Private Initialization Methods
// =============================================================================

// applyConfigDefaults fills in missing configuration values.
func applyConfigDefaults(cfg Config) Config {
	if cfg.Port == 0 {
		cfg.Port = 12310
	}
	if cfg.OTelEndpoint == "" {
		cfg.OTelEndpoint = "aleutian-otel-collector:4317"
	}
	return cfg
}

// initTracer sets up the OTLP trace exporter. The gRPC connection is
// lazy, so an unreachable collector does not block startup.
func (s *service) initTracer() (func(context.Context), error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(s.config.OTelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("exchange-service")))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))

	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	cleanup := func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}

	return cleanup, nil
}

// initStore selects the backing store. Postgres when a DSN is
// configured, otherwise the in-memory store (lightweight mode).
func (s *service) initStore() error {
	if s.config.PostgresDSN == "" {
		slog.Info("Postgres DSN not configured, running in lightweight mode")
		s.store = store.NewMemory()
		return nil
	}
	pg, err := store.NewPostgres(s.config.PostgresDSN)
	if err != nil {
		return err
	}
	slog.Info("Postgres store initialized")
	s.store = pg
	return nil
}

// initAssist wires the AI pipeline. A missing API key downgrades to an
// unavailable pipeline instead of failing startup.
func (s *service) initAssist() {
	var capability assist.Capability
	if s.config.AssistEnabled {
		openaiCap, err := assist.NewOpenAICapability()
		if err != nil {
			slog.Warn("assist capability unavailable", "error", err)
		} else {
			capability = openaiCap
		}
	}
	s.pipeline = assist.NewPipeline(capability, slog.Default())
}

// initRouter sets up the Gin router with middleware and all routes.
func (s *service) initRouter() {
	if s.config.GinMode != "" {
		gin.SetMode(s.config.GinMode)
	}
	s.router = gin.Default()
	s.router.Use(otelgin.Middleware("exchange-service"))

	logger := slog.Default()
	notifications := engine.NewNotificationService(s.store, logger)
	questions := engine.NewQuestionService(s.store, s.pipeline, logger)
	answers := engine.NewAnswerService(s.store, notifications, s.pipeline, logger)

	routes.SetupRoutes(s.router, routes.Deps{
		Questions:     questions,
		Answers:       answers,
		Notifications: notifications,
		Assist:        s.pipeline,
		Opts:          s.opts,
	})
}

// cleanup releases resources on Run exit or failed construction.
func (s *service) cleanup() {
	if s.tracerCleanup != nil {
		s.tracerCleanup(context.Background())
	}
}

// =============================================================================
// Compile-time Interface Compliance
// =============================================================================

var _ Service = (*service)(nil)
