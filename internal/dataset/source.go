package dataset

import (
	"context"

	"github.com/justsurfingit/jadarat-dashboard/internal/apperrors"
	"github.com/justsurfingit/jadarat-dashboard/internal/models"
	"gorm.io/gorm"
)

// Source produces the full list of postings.
type Source interface {
	Load(ctx context.Context) ([]models.JobPosting, error)
	Name() string
}

type CSVSource struct {
	Path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Load(ctx context.Context) ([]models.JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Unavailable("load cancelled", err)
	}
	return ReadCSVFile(s.Path)
}

func (s *CSVSource) Name() string {
	return "csv:" + s.Path
}

// PostgresSource reads the table populated by cmd/import.
type PostgresSource struct {
	DB *gorm.DB
}

func NewPostgresSource(db *gorm.DB) *PostgresSource {
	return &PostgresSource{DB: db}
}

func (s *PostgresSource) Load(ctx context.Context) ([]models.JobPosting, error) {
	var postings []models.JobPosting
	if err := s.DB.WithContext(ctx).Order("id").Find(&postings).Error; err != nil {
		return nil, apperrors.DataLoad("query job_postings", err)
	}
	return postings, nil
}

func (s *PostgresSource) Name() string {
	return "postgres:job_postings"
}

// StaticSource serves a fixed slice. Used by tests.
type StaticSource struct {
	Rows []models.JobPosting
}

func (s StaticSource) Load(ctx context.Context) ([]models.JobPosting, error) {
	out := make([]models.JobPosting, len(s.Rows))
	copy(out, s.Rows)
	return out, nil
}

func (s StaticSource) Name() string {
	return "static"
}
