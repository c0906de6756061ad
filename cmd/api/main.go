package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"opera_mock/internal/adapters/fixtures"
	server "opera_mock/internal/adapters/http_server"
	"opera_mock/internal/adapters/observability"
	redisad "opera_mock/internal/adapters/redis"
	"opera_mock/internal/app"
	"opera_mock/internal/domain"
	"opera_mock/internal/shared"
	"opera_mock/internal/storage/memory"
	mysqlrepo "opera_mock/internal/storage/mysql"
)

type store interface {
	domain.PropertyRepository
	domain.ReservationRepository
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	reg := observability.InitRegistry()
	metricsSrv := observability.Serve(cfg.MetricsAddr, reg)

	repo, closeStore := openStore(ctx, cfg)
	defer closeStore()

	// cache is optional; keep the interface nil when redis is not configured
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, continuing; cache calls will miss")
		}
		cache = rc
	}

	rsv := app.NewReservationService(repo)
	rsv.OnFallback = observability.ObserveFallback

	if cfg.StoreDriver == shared.StoreMemory {
		seedMemory(ctx, repo, cache, rsv)
	}

	srv := server.New(cfg.RequestTimeout)
	srv.MountHandlers(&server.Handlers{
		Content:      app.NewContentService(repo, cache, cfg.CacheTTL),
		Shop:         app.NewShopService(repo),
		Inventory:    app.NewInventoryService(),
		Reservations: rsv,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.StoreDriver).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}

func openStore(ctx context.Context, cfg shared.Config) (store, func()) {
	if cfg.StoreDriver == shared.StoreMemory {
		log.Info().Msg("using in-memory store")
		return memory.New(), func() {}
	}
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")
	return mysqlrepo.New(db), func() { _ = db.Close() }
}

// seedMemory loads the bundled fixtures so an in-memory API starts with content.
func seedMemory(ctx context.Context, repo store, cache domain.Cache, rsv *app.ReservationService) {
	src, err := fixtures.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load fixtures")
	}
	rep, err := app.NewImportService(src, repo, cache).Run(ctx, nil, 1)
	if err != nil {
		log.Fatal().Err(err).Msg("seed content")
	}
	n, err := src.SeedReservations(ctx, repo, rsv)
	if err != nil {
		log.Fatal().Err(err).Msg("seed reservations")
	}
	log.Info().Int("properties", rep.Imported).Int("room_types", rep.RoomTypes).Int("reservations", n).Msg("memory store seeded")
}
