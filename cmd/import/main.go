// Command import loads a Jadarat CSV export into the job_postings table used
// by DATA_SOURCE=postgres.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/justsurfingit/jadarat-dashboard/internal/config"
	"github.com/justsurfingit/jadarat-dashboard/internal/database"
	"github.com/justsurfingit/jadarat-dashboard/internal/dataset"
	"github.com/justsurfingit/jadarat-dashboard/internal/logger"
	"github.com/justsurfingit/jadarat-dashboard/internal/services"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}

	path := flag.String("file", cfg.DataPath, "CSV export to import")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall import timeout")
	flag.Parse()

	zl, err := logger.New(cfg.IsDevelopment())
	if err != nil {
		log.Fatal("Error creating logger: ", err)
	}
	defer zl.Sync()

	postings, err := dataset.ReadCSVFile(*path)
	if err != nil {
		zl.Fatal("data load error", zap.String("file", *path), zap.Error(err))
	}
	zl.Info("parsed export", zap.String("file", *path), zap.Int("rows", len(postings)))

	db, err := database.Connect(cfg.DatabaseDSN, zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	jobService := services.NewJobService(db, cfg.ImportBatchSize)
	inserted, err := jobService.ReplacePostings(ctx, postings)
	if err != nil {
		zl.Fatal("import failed", zap.Error(err))
	}
	total, err := jobService.CountPostings(ctx)
	if err != nil {
		zl.Fatal("count failed", zap.Error(err))
	}
	zl.Info("✅ import complete", zap.Int64("inserted", inserted), zap.Int64("table_rows", total))
}
