package main

import (
	"context"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"staff_reviews/internal/adapters/directory"
	server "staff_reviews/internal/adapters/http_server"
	"staff_reviews/internal/adapters/observability"
	redisad "staff_reviews/internal/adapters/redis"
	"staff_reviews/internal/app"
	"staff_reviews/internal/domain"
	"staff_reviews/internal/shared"
	"staff_reviews/internal/storage/sqlstore"
)

func main() {
	ctx := context.Background()
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, dialect, err := sqlstore.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("database connection failed")
	}
	defer db.Close()
	log.Info().Str("driver", cfg.DBDriver).Msg("database connection ok")

	employeeTable := sqlstore.NewEmployeeStore(db, dialect)
	reviews := sqlstore.NewReviewMapper(db, dialect, nil)
	if cfg.AutoSchema {
		if err := sqlstore.CreateSchema(ctx, employeeTable, reviews); err != nil {
			log.Fatal().Err(err).Msg("schema bootstrap failed")
		}
	}

	// deps
	var employees domain.EmployeeFinder = employeeTable
	if cfg.DirectoryURL != "" {
		dc, err := directory.New(cfg.DirectoryURL, cfg.DirectoryKey, cfg.DirectoryRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize directory client")
		}
		employees = dc
		log.Info().Str("url", cfg.DirectoryURL).Msg("employee lookups via directory")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; cache errors will be ignored")
		}
		defer rc.Close()
		cache = rc
	}
	svc := app.NewReviewService(reviews, employees, cache, cfg.CacheTTL)

	// http
	srv := server.New(15 * time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Reviews: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
