package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tailscale.com/tsnet"

	"github.com/claude/hypertroq/internal/account"
	"github.com/claude/hypertroq/internal/api"
	"github.com/claude/hypertroq/internal/config"
	"github.com/claude/hypertroq/internal/gateway"
	"github.com/claude/hypertroq/internal/overlay"
	"github.com/claude/hypertroq/internal/query"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("HypertroQ gateway starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Credential store and session
	creds, err := account.OpenCredentialDB(cfg.Credentials.Path)
	if err != nil {
		log.Error("failed to open credential store", "error", err)
		os.Exit(1)
	}
	defer creds.Close()

	sess, err := account.NewSession(creds)
	if err != nil {
		log.Error("failed to restore session", "error", err)
		os.Exit(1)
	}
	if sess.Authenticated() {
		log.Info("restored saved credentials")
	}

	// Backend client
	client := api.New(cfg.Backend.BaseURL, sess)
	if cfg.Backend.TimeoutSeconds > 0 {
		client.SetTimeout(time.Duration(cfg.Backend.TimeoutSeconds) * time.Second)
	}
	log.Info("backend configured", "url", cfg.Backend.BaseURL)

	// Cache and draft stores
	store := query.NewStore(client)
	drafts := overlay.NewStore()

	// Expired or revoked tokens force a fresh login.
	client.SetUnauthorizedHook(func() {
		log.Warn("backend rejected credentials, clearing session")
		sess.Clear()
		store.InvalidateAll()
	})

	srv := gateway.New(client, store, drafts, sess, log)

	// Start server — tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Gateway.Host, cfg.Gateway.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("gateway starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("gateway stopped")
}
