package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"opera_mock/internal/adapters/fixtures"
	"opera_mock/internal/adapters/observability"
	redisad "opera_mock/internal/adapters/redis"
	"opera_mock/internal/adapters/upstream"
	"opera_mock/internal/app"
	"opera_mock/internal/domain"
	"opera_mock/internal/shared"
	mysqlrepo "opera_mock/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "importer")

	log.Info().
		Str("source", cfg.ImportSource).
		Int("workers", cfg.ImportWorkers).
		Strs("codes", cfg.ImportCodes).
		Dur("interval", cfg.ImportInterval).
		Msg("importer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")
	repo := mysqlrepo.New(db)

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}

	var (
		src  domain.ContentSource
		seed *fixtures.Source
	)
	switch cfg.ImportSource {
	case shared.SourceUpstream:
		client, err := upstream.New(cfg.UpstreamBase, cfg.UpstreamKey, cfg.UpstreamChan, cfg.UpstreamRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize upstream client")
		}
		src = client
	default:
		if seed, err = fixtures.Load(); err != nil {
			log.Fatal().Err(err).Msg("load fixtures")
		}
		src = seed
	}

	imp := app.NewImportService(src, repo, cache)
	run := func() {
		rep, err := imp.Run(ctx, cfg.ImportCodes, cfg.ImportWorkers)
		if err != nil {
			log.Error().Err(err).Msg("import run aborted")
			return
		}
		log.Info().
			Int("imported", rep.Imported).
			Int("room_types", rep.RoomTypes).
			Int("missed", rep.Missed).
			Int("failed", rep.Failed).
			Msg("import completed")
	}

	run()
	if seed != nil {
		n, err := seed.SeedReservations(ctx, repo, app.NewReservationService(repo))
		if err != nil {
			log.Error().Err(err).Msg("seed reservations")
		} else {
			log.Info().Int("reservations", n).Msg("seed reservations done")
		}
	}

	if cfg.ImportInterval <= 0 {
		return
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}
	if _, err := s.NewJob(
		gocron.DurationJob(cfg.ImportInterval),
		gocron.NewTask(run),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		log.Fatal().Err(err).Msg("schedule import")
	}
	s.Start()
	log.Info().Dur("interval", cfg.ImportInterval).Msg("import scheduler started")

	<-ctx.Done()
	if err := s.Shutdown(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown")
	}
	log.Info().Msg("importer stopped")
}
