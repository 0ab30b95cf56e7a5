package services

import (
	"context"

	"github.com/justsurfingit/jadarat-dashboard/internal/models"
	"gorm.io/gorm"
)

type JobService struct {
	DB        *gorm.DB
	BatchSize int
}

func NewJobService(db *gorm.DB, batchSize int) *JobService {
	return &JobService{
		DB:        db,
		BatchSize: batchSize,
	}
}

// ReplacePostings swaps the table contents for postings in one transaction.
func (s *JobService) ReplacePostings(ctx context.Context, postings []models.JobPosting) (int64, error) {
	var inserted int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// AllowGlobalUpdate lets gorm issue a DELETE without a WHERE clause
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.JobPosting{}).Error; err != nil {
			return err
		}
		if len(postings) == 0 {
			return nil
		}
		// ids are assigned by the database; file order is preserved by insert order
		for i := range postings {
			postings[i].ID = 0
		}
		res := tx.CreateInBatches(postings, s.BatchSize)
		inserted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *JobService) CountPostings(ctx context.Context) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.JobPosting{}).Count(&count).Error
	return count, err
}
