package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/grafbee/procurement-service/internal/db"
	"github.com/grafbee/procurement-service/internal/distance"
	"github.com/grafbee/procurement-service/internal/events"
	"github.com/grafbee/procurement-service/internal/handlers"
	"github.com/grafbee/procurement-service/internal/repository"
	"github.com/grafbee/procurement-service/internal/router"
	"github.com/grafbee/procurement-service/internal/router/config"
	"github.com/grafbee/procurement-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	setupLogger(cfg.LogLevel)

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing database")
	}
	defer dbPool.Close()

	requestTimeout := time.Duration(cfg.RequestTimeout) * time.Second
	analysisTimeout := time.Duration(cfg.AnalysisTimeout) * time.Second

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NatsURL != "" {
		natsPublisher, err := events.NewNatsPublisher(cfg.NatsURL, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting to nats")
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	proposalRepo := repository.NewPostgresProposalRepository(dbPool)
	requirementRepo := repository.NewPostgresRequirementRepository(dbPool)
	reviewRepo := repository.NewPostgresReviewRepository(dbPool)
	vendorRepo := repository.NewPostgresVendorRepository(dbPool)
	notificationRepo := repository.NewPostgresNotificationRepository(dbPool)

	resolver := distance.NewGoogleResolver(cfg.GoogleMapsAPIKey, cfg.GoogleMapsURL)

	notificationService := services.NewNotificationService(notificationRepo, dbPool)
	proposalService := services.NewProposalService(proposalRepo, reviewRepo, notificationService, publisher, cfg.ProcurementEmail, dbPool)
	requirementService := services.NewRequirementService(requirementRepo, dbPool)
	vendorService := services.NewVendorService(vendorRepo, reviewRepo, notificationService, dbPool)
	analysisService := services.NewAnalysisService(proposalRepo, requirementRepo, reviewRepo, vendorRepo, resolver, cfg.DefaultSiteAddress)

	proposalHandler := handlers.NewProposalHandler(proposalService, log.Logger, requestTimeout)
	requirementHandler := handlers.NewRequirementHandler(requirementService, log.Logger, requestTimeout)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, log.Logger, analysisTimeout)
	vendorHandler := handlers.NewVendorHandler(vendorService, log.Logger, requestTimeout)
	notificationHandler := handlers.NewNotificationHandler(notificationService, log.Logger, requestTimeout)

	if cfg.DeliveryReminder != "" {
		reminder := services.NewDeliveryReminder(proposalRepo, notificationService, log.Logger)
		cronRunner, err := reminder.Start(cfg.DeliveryReminder)
		if err != nil {
			log.Fatal().Err(err).Msg("error starting delivery reminder")
		}
		defer cronRunner.Stop()
	}

	routes := router.InitRoutes(proposalHandler, requirementHandler, analysisHandler, vendorHandler, notificationHandler)

	log.Info().Msgf("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func setupLogger(level string) {
	logLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create a new migrate instance")
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal().Err(err).Msg("failed to run migrate up")
	}
	log.Info().Msg("db migrated successfully")
}
