package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nagios-autothreshold/src/analysis"
	"nagios-autothreshold/src/config"
	"nagios-autothreshold/src/helpers"
	"nagios-autothreshold/src/interfaces"
	"nagios-autothreshold/src/logger"
	"nagios-autothreshold/src/metrics"
	"nagios-autothreshold/src/server"
	"nagios-autothreshold/src/storage"

	"github.com/prometheus/client_golang/prometheus"
)

// -----------------------------------------------------------------------------

func main() {
	os.Exit(run())
}

func run() int {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	asJSON := flag.Bool("json", false, "print the report as JSON")
	serve := flag.Bool("serve", false, "serve reports over HTTP instead of a single run")
	initSchema := flag.Bool("init-schema", false, "create the snapshot schema (sqlite only) and exit")
	flag.Parse()

	// Load config from YAML file
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return helpers.ExitConfiguration
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg.MConfig, cfg.Name)
	errHandler := helpers.NewErrorHandler(appLogger.Named("ErrorHandler"))

	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		return errHandler.Handle(err, "metrics registration")
	}

	// 1. Storage
	var db interfaces.IDatabase
	switch cfg.Storage.DBType {
	case "postgres":
		db, err = storage.NewPostgresDB(cfg.MConfig, appLogger.Named("PostgresDB"))
	default:
		db, err = storage.NewSQLiteDB(cfg.MConfig, appLogger.Named("SQLiteDB"))
	}
	if err != nil {
		return errHandler.Handle(err, "storage setup")
	}
	if err := db.Initialize(); err != nil {
		return errHandler.Handle(err, "storage initialization")
	}
	defer db.Close()

	if *initSchema {
		snapshot, ok := db.(*storage.SQLiteDB)
		if !ok {
			return errHandler.Handle(helpers.NewConfigurationError("-init-schema requires db_type sqlite"), "schema")
		}
		if err := snapshot.CreateSchema(); err != nil {
			return errHandler.Handle(err, "schema")
		}
		appLogger.Info("Snapshot schema ready at %s", cfg.Storage.DBPath)
		return helpers.ExitOK
	}

	// 2. Analyzer
	analyzer, err := analysis.NewThresholdAnalyzer(cfg.MConfig, db, appLogger.Named("Analyzer"))
	if err != nil {
		return errHandler.Handle(err, "analyzer setup")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *serve {
		return serveReports(ctx, cfg, appLogger, errHandler, analyzer, registry)
	}

	// 3. One-shot run
	report, runErr := analyzer.Run(ctx, time.Now())

	if path := cfg.Metrics.TextfilePath; path != "" {
		if err := metrics.WriteTextfile(path, registry); err != nil {
			appLogger.Warning("Failed to write metrics textfile %s: %v", path, err)
		}
	}

	if runErr != nil {
		return errHandler.Handle(runErr, "analysis")
	}

	if *asJSON {
		err = analysis.WriteJSON(os.Stdout, report)
	} else {
		err = analysis.WriteText(os.Stdout, report)
	}
	if err != nil {
		return errHandler.Handle(err, "report output")
	}
	return helpers.ExitOK
}

// -----------------------------------------------------------------------------

func serveReports(
	ctx context.Context,
	cfg *config.Config,
	appLogger *logger.Logger,
	errHandler *helpers.ErrorHandler,
	analyzer interfaces.IThresholdAnalyzer,
	registry *prometheus.Registry,
) int {
	srv := server.NewReportServer(cfg.MConfig, appLogger.Named("ReportServer"), analyzer, registry)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return errHandler.Handle(err, "report server")
	case <-ctx.Done():
		appLogger.Info("Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return errHandler.Handle(err, "report server shutdown")
	}
	return helpers.ExitOK
}
