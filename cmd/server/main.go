package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-hds-keeper/internal/adapter"
	"github.com/MKhiriev/go-hds-keeper/internal/app"
	"github.com/MKhiriev/go-hds-keeper/internal/audit"
	"github.com/MKhiriev/go-hds-keeper/internal/config"
	"github.com/MKhiriev/go-hds-keeper/internal/crypto"
	"github.com/MKhiriev/go-hds-keeper/internal/envelope"
	"github.com/MKhiriev/go-hds-keeper/internal/handler"
	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/internal/server"
	"github.com/MKhiriev/go-hds-keeper/internal/service"
	"github.com/MKhiriev/go-hds-keeper/internal/store"
	"github.com/MKhiriev/go-hds-keeper/internal/workers"
	"github.com/MKhiriev/go-hds-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const startupTimeout = 30 * time.Second

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-hds-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	keys := crypto.NewKeyStore(cfg.App.MasterSecret)
	if keys.UsesDefaultSecret() {
		log.Warn().Msg("no master secret configured, running with the default secret is not compliant")
	}

	schema, err := envelope.LoadSchema(cfg.Compliance.SchemaFile)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading field policies")
	}

	cipher := crypto.NewFieldCipher(keys, log)
	env, err := envelope.NewEnvelope(cipher, keys, schema, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating compliance envelope")
	}

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting database")
	}
	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}
	closers := []io.Closer{db}

	storages := store.NewStorages(db, log)

	var auditStore audit.Store = storages.AuditRepository
	if cfg.Audit.CollectorURL != "" {
		auditStore, err = adapter.NewAuditCollector(cfg.Audit, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating audit collector")
		}
	}

	var queue audit.LocalQueue
	if cfg.Storage.LocalQueue.Path != "" {
		sqliteQueue, err := audit.NewSQLiteQueue(ctx, cfg.Storage.LocalQueue.Path, cfg.Storage.LocalQueue.Capacity, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error opening audit queue")
		}
		queue = sqliteQueue
		closers = append(closers, sqliteQueue)
	} else {
		queue = audit.NewMemoryQueue(cfg.Storage.LocalQueue.Capacity)
	}

	auditLogger := audit.NewLogger(auditStore, queue, cfg.Compliance.RetentionYears, cfg.Audit.WriteTimeout, log)

	services, err := service.NewServices(storages.RecordRepository, service.Compliance{
		Envelope:   env,
		Cipher:     cipher,
		Keys:       keys,
		Audit:      auditLogger,
		AuditStore: auditStore,
	}, *cfg, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	bg := workers.NewWorkers(services, cfg.Workers, log)

	if err = app.NewApp(srv, bg, log, closers...).Run(); err != nil {
		log.Fatal().Err(err).Msg("server run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
