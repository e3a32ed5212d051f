// Package main runs the fitness tracker MCP server over stdio (for local MCP clients).
// The same MCP server is also mounted on the service at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/purav-khanna/Fitness-Tracker/internal"
	"github.com/purav-khanna/Fitness-Tracker/internal/config"
	trackermcp "github.com/purav-khanna/Fitness-Tracker/internal/tracker/mcp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the MCP protocol
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("location: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	backends, err := internal.ConnectBackends(ctx, internal.ConnectBackendsParams{
		Config:        cfg,
		RedisPassword: os.Getenv("FITNESS_REDIS_PASS"),
		DBUser:        os.Getenv("FITNESS_DB_USER"),
		DBPassword:    os.Getenv("FITNESS_DB_PASS"),
	})
	if err != nil {
		log.Fatalf("connect backends: %v", err)
	}
	defer func() {
		if err := backends.Close(); err != nil {
			log.Errorf("close backends: %v", err)
		}
	}()

	store, err := internal.NewStore(ctx, cfg, backends)
	if err != nil {
		log.Errorf("new store: %v", err)
		return
	}

	tracker := internal.NewTracker(internal.NewTrackerParams{
		Store:    store,
		Location: loc,
	})
	server := trackermcp.NewServer(tracker.MCP)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Errorf("mcp server: %v", err)
	}
}
