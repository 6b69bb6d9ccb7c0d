package main

import (
	"context"
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"staff_reviews/internal/adapters/directory"
	"staff_reviews/internal/adapters/observability"
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

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	path := cfg.ImportFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		log.Fatal().Msg("no import file: pass a path or set REVIEWS_IMPORT_FILE")
	}
	log.Info().Str("file", path).Int("workers", cfg.ImportWorkers).Msg("importer starting")

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Msg("open import file")
	}
	records, err := app.ParseImportFile(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("parse import file")
	}

	db, dialect, err := sqlstore.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	employeeTable := sqlstore.NewEmployeeStore(db, dialect)
	reviews := sqlstore.NewReviewMapper(db, dialect, nil)
	if cfg.AutoSchema {
		if err := sqlstore.CreateSchema(ctx, employeeTable, reviews); err != nil {
			log.Fatal().Err(err).Msg("schema bootstrap failed")
		}
	}

	var employees domain.EmployeeFinder = employeeTable
	if cfg.DirectoryURL != "" {
		dc, err := directory.New(cfg.DirectoryURL, cfg.DirectoryKey, cfg.DirectoryRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize directory client")
		}
		employees = dc
	}

	rep, err := app.NewImportService(reviews, employees, cfg.ImportWorkers).Import(ctx, records)
	ev := log.Info()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.Str("run_id", rep.RunID).
		Int("total", rep.Total).
		Int("created", rep.Created).
		Int("skipped", len(rep.Failures)).
		Msg("import finished")
	if err != nil {
		os.Exit(1)
	}
}
