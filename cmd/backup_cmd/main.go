// Package main exports the tracker state to a backup file or imports one,
// against the store configured for the given environment.
//
// An import into a store a running service also uses is picked up by the
// service's next mutation, but its read-only views (dashboard, lists) may show
// cached documents for up to storage_cache_ttl_seconds. Prefer the service's
// /backup/import endpoint or its watch folder while it is running.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/purav-khanna/Fitness-Tracker/internal"
	"github.com/purav-khanna/Fitness-Tracker/internal/config"
	"github.com/purav-khanna/Fitness-Tracker/internal/logging"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/backup"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	exportPath := flag.String("export", "", "write a backup of the current state to this file")
	importPath := flag.String("import", "", "import the backup in this file, replacing the parts it contains")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogLevel:    *logLevel,
		LogToStdout: true,
	})

	if (*exportPath == "") == (*importPath == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -export or -import must be set")
		fmt.Fprintln(os.Stderr, "while the service runs, prefer its /backup/import endpoint or watch folder")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*env, *configPath, *exportPath, *importPath); err != nil {
		log.Fatalf("backup: %s", err)
	}
}

func run(env, configPath, exportPath, importPath string) (err error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx := context.Background()
	backends, err := internal.ConnectBackends(ctx, internal.ConnectBackendsParams{
		Config:        cfg,
		RedisPassword: os.Getenv("FITNESS_REDIS_PASS"),
		DBUser:        os.Getenv("FITNESS_DB_USER"),
		DBPassword:    os.Getenv("FITNESS_DB_PASS"),
	})
	if err != nil {
		return fmt.Errorf("connect backends: %w", err)
	}
	defer func() {
		err = multierr.Append(err, backends.Close())
	}()

	store, err := internal.NewStore(ctx, cfg, backends)
	if err != nil {
		return fmt.Errorf("new store: %w", err)
	}
	tracker := internal.NewTracker(internal.NewTrackerParams{
		Store:    store,
		Location: loc,
	})

	if exportPath != "" {
		data, err := tracker.Backup.Export(ctx)
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportPath, data, 0o600); err != nil {
			return fmt.Errorf("write [%s]: %w", exportPath, err)
		}
		log.Infof("backup written to [%s]", exportPath)
		return nil
	}

	data, err := os.ReadFile(importPath)
	if err != nil {
		return fmt.Errorf("read [%s]: %w", importPath, err)
	}
	result, err := tracker.Backup.Import(ctx, backup.SourceCLI, string(data))
	if err != nil {
		if message, ok := backup.UserMessage(err); ok {
			return fmt.Errorf("%s (%w)", message, err)
		}
		return err
	}
	log.Infof("%s imported: %v", result.Message, result.Imported)
	for _, a := range result.NewAchievements {
		log.Infof("achievement unlocked: %s", a.Title)
	}
	return nil
}
