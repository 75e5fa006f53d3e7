package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/wilsonritt/snmp-monitor/internal/config"
	"github.com/wilsonritt/snmp-monitor/internal/core/auth"
	"github.com/wilsonritt/snmp-monitor/internal/core/monitor"
	"github.com/wilsonritt/snmp-monitor/internal/core/user"
	"github.com/wilsonritt/snmp-monitor/internal/logger"
	"github.com/wilsonritt/snmp-monitor/internal/snmp"
	"github.com/wilsonritt/snmp-monitor/internal/storage/sqlite"
	"github.com/wilsonritt/snmp-monitor/internal/transport/rest"
	"github.com/wilsonritt/snmp-monitor/internal/transport/websocket"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := sqlite.NewSqliteDB(cfg.DBPath, log)
	if err != nil {
		log.Error("failed to open sqlite database", "error", err)
		return
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close sqlite database", "error", err)
		}
	}()

	hub := websocket.NewHub(log)
	go hub.Run()

	sourceFactory := func(spec monitor.TargetSpec) (monitor.CounterSource, error) {
		return snmp.NewClient(snmp.ClientConfig{
			Target:    spec.Target,
			Port:      cfg.SNMPPort,
			Community: spec.Community,
			Version:   spec.Version,
			Timeout:   cfg.SNMPTimeout,
			Retries:   cfg.SNMPRetries,
		}, log)
	}
	monitorService := monitor.NewService(cfg, sourceFactory, hub, log)

	userRepo := sqlite.NewUserRepository(db)
	userService := user.NewService(userRepo, cfg)
	authService := auth.NewService(userRepo, cfg)

	router := rest.NewRouter(cfg, &rest.RouterDeps{
		WS:      websocket.NewHandler(hub, cfg, log),
		Monitor: rest.NewMonitorHandler(monitorService),
		Auth:    rest.NewAuthHandler(authService, cfg),
		User:    rest.NewUserHandler(userService),
	})

	srv := rest.NewServer(router, cfg.Address)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting http server", "address", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http server shutdown error", "error", err)
		}

	case err := <-errCh:
		log.Error("http server error", "error", err)
	}

	log.Info("server stopped")
}
