// Package main is the entry point for the retrofit projection service.
// The service stores property models, household profiles, technology
// scenarios, and regional assumption snapshots, and exposes a deterministic
// cost/carbon projection engine over HTTP.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/config"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/database"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/assumptions"
	assumptionshandlers "github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/assumptions/handlers"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/households"
	householdshandlers "github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/households/handlers"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/projection"
	projectionhandlers "github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/projection/handlers"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/properties"
	propertieshandlers "github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/properties/handlers"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/scenarios"
	scenarioshandlers "github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/scenarios/handlers"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/scheduler"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/server"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting projection service")

	// Three-database layout: plan.db holds the user-editable records,
	// assumptions.db the versioned regional snapshots, cache.db the
	// recomputable projection memo cache.
	planDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "plan.db"),
		Profile: database.ProfileStandard,
		Name:    "plan",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open plan database")
	}
	defer planDB.Close()

	assumptionsDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "assumptions.db"),
		Profile: database.ProfileStandard,
		Name:    "assumptions",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open assumptions database")
	}
	defer assumptionsDB.Close()

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	for _, db := range []*database.DB{planDB, assumptionsDB, cacheDB} {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Str("database", db.Name()).Msg("Failed to migrate database")
		}
	}

	// Repositories
	propertyRepo := properties.NewRepository(planDB.Conn(), log)
	occupancyRepo := households.NewOccupancyRepository(planDB.Conn(), log)
	dhwRepo := households.NewDHWRepository(planDB.Conn(), log)
	scenarioRepo := scenarios.NewRepository(planDB.Conn(), log)
	snapshotRepo := assumptions.NewRepository(assumptionsDB.Conn(), log)
	projectionCache := projection.NewCache(cacheDB.Conn(), log)

	projectionService := projection.NewService(
		propertyRepo,
		occupancyRepo,
		dhwRepo,
		scenarioRepo,
		snapshotRepo,
		projectionCache,
		cfg.DefaultRegion,
		log,
	)

	// Background jobs: nightly projection cache sweep
	sched := scheduler.New(log)
	sweepJob := projection.NewCacheSweepJob(
		projectionCache,
		time.Duration(cfg.ProjectionCacheTTL)*time.Hour,
		log,
	)
	if err := sched.AddJob("0 3 * * *", sweepJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache sweep job")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Port:          cfg.Port,
		DevMode:       cfg.DevMode,
		Log:           log,
		PlanDB:        planDB,
		AssumptionsDB: assumptionsDB,
		CacheDB:       cacheDB,

		PropertiesHandler:  propertieshandlers.NewHandler(propertyRepo, log),
		HouseholdsHandler:  householdshandlers.NewHandler(occupancyRepo, dhwRepo, log),
		ScenariosHandler:   scenarioshandlers.NewHandler(scenarioRepo, log),
		AssumptionsHandler: assumptionshandlers.NewHandler(snapshotRepo, log),
		ProjectionHandler:  projectionhandlers.NewHandler(projectionService, log),
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
