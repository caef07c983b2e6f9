// hypertroq-mcp serves the program and exercise catalogs over MCP stdio so
// assistants can answer questions about training programs and volume.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/hypertroq/internal/account"
	"github.com/claude/hypertroq/internal/api"
	"github.com/claude/hypertroq/internal/config"
	"github.com/claude/hypertroq/internal/mcp"
	"github.com/claude/hypertroq/internal/query"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Logs go to stderr: stdout belongs to the MCP transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

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
	if !sess.Authenticated() {
		log.Error("no saved credentials; log in through the gateway first")
		os.Exit(1)
	}

	client := api.New(cfg.Backend.BaseURL, sess)
	if cfg.Backend.TimeoutSeconds > 0 {
		client.SetTimeout(time.Duration(cfg.Backend.TimeoutSeconds) * time.Second)
	}

	srv := mcp.New(query.NewStore(client), Version, log)

	log.Info("HypertroQ MCP server starting", "version", Version, "backend", cfg.Backend.BaseURL)
	if err := server.ServeStdio(srv); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
