package database

import (
	"github.com/justsurfingit/jadarat-dashboard/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens Postgres and migrates the job_postings table.
func Connect(dsn string, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("database connection established")

	logger.Info("running migrations")
	if err := db.AutoMigrate(&models.JobPosting{}); err != nil {
		return nil, err
	}
	return db, nil
}
