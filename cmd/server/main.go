// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/tripwise/internal/api"
	"github.com/tomtom215/tripwise/internal/auth"
	"github.com/tomtom215/tripwise/internal/bootstrap"
	"github.com/tomtom215/tripwise/internal/config"
	"github.com/tomtom215/tripwise/internal/logging"
	"github.com/tomtom215/tripwise/internal/metrics"
	"github.com/tomtom215/tripwise/internal/supervisor"
	"github.com/tomtom215/tripwise/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: CONFIG_PATH or ./config.yaml)")
	issueToken := flag.String("issue-token", "", "print a signed JWT for the given subject and exit")
	tokenRole := flag.String("token-role", "reader", "role claim for -issue-token")
	tokenTTL := flag.Duration("token-ttl", auth.DefaultTokenTTL, "lifetime for -issue-token")
	flag.Parse()

	path := config.ResolvePath(*configPath)
	cfg, err := config.LoadFile(path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	bootstrap.InitLogging(cfg)

	if *issueToken != "" {
		if err := printToken(cfg, *issueToken, *tokenRole, *tokenTTL); err != nil {
			logging.Fatal().Err(err).Msg("Failed to issue token")
		}
		return
	}

	if err := run(cfg, path); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
}

func printToken(cfg *config.Config, subject, role string, ttl time.Duration) error {
	manager, err := auth.NewJWTManager(cfg.Security.JWTSecret, ttl)
	if err != nil {
		return err
	}
	token, err := manager.GenerateToken(subject, role)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, token)
	return err
}

func run(cfg *config.Config, configPath string) error {
	logging.Info().Str("version", version).Msg("Starting Tripwise with supervisor tree")
	metrics.SetAppInfo(version, runtime.Version())

	components, err := bootstrap.New(cfg, logging.Logger())
	if err != nil {
		return err
	}
	defer func() {
		if err := components.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing dataset store")
		}
	}()

	authMW, err := initAuth(cfg)
	if err != nil {
		return err
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); restrict it for public deployments")
	}

	handler := api.NewHandler(components.Engine, components.Store, api.HandlerOptions{
		RequestTimeout: cfg.Server.RequestTimeout,
		ReloadTimeout:  cfg.Dataset.DownloadTimeout * 3,
		Version:        version,
	})
	chiMW := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, authMW, chiMW)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	watchLogLevel(configPath)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(services.NewDatasetRefreshService(components.Store, services.DatasetRefreshConfig{
		LoadOnStartup: true,
		Interval:      cfg.Dataset.RefreshInterval,
	}, logging.WithComponent("dataset-refresh")))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Str("auth_mode", cfg.Security.AuthMode).Msg("HTTP server service added")

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	logging.Info().Msg("Shutdown requested, waiting for supervisor to finish")

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
	return nil
}

// watchLogLevel applies logging.level changes from the config file without a
// restart. Other settings still need one.
func watchLogLevel(path string) {
	if path == "" {
		return
	}
	err := config.WatchConfigFile(path, func() {
		updated, err := config.LoadFile(path)
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Ignoring invalid config change")
			return
		}
		logging.SetLevelString(updated.Logging.Level)
		logging.Info().Str("level", updated.Logging.Level).Msg("Log level reloaded")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config file watch unavailable")
	}
}

func initAuth(cfg *config.Config) (*auth.Middleware, error) {
	security := logging.NewSecurityLogger()

	if cfg.Security.AuthMode != auth.ModeJWT {
		logging.Warn().Msg("Authentication is DISABLED (AUTH_MODE=none); every endpoint is public")
		return auth.NewMiddleware(nil, auth.ModeNone, security), nil
	}

	manager, err := auth.NewJWTManager(cfg.Security.JWTSecret, auth.DefaultTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("initialize JWT manager: %w", err)
	}
	logging.Info().Msg("JWT authentication enabled")
	return auth.NewMiddleware(manager, auth.ModeJWT, security), nil
}
