package services

import (
	"context"

	"github.com/justsurfingit/jadarat-dashboard/internal/dataset"
	"github.com/justsurfingit/jadarat-dashboard/internal/dtos"
	"github.com/justsurfingit/jadarat-dashboard/internal/models"
)

const (
	DashboardTitle    = "📊 Saudi Job Market Analysis"
	DashboardQuestion = "Does the job market really run on experience? 🤔"
	DashboardIntro    = "🔹 This analysis looks at job requirements across Saudi Arabia and how they vary by experience, gender, and region."
	PreviewRows       = 5
)

type DashboardService struct {
	Store *dataset.Store
}

func NewDashboardService(store *dataset.Store) *DashboardService {
	return &DashboardService{Store: store}
}

// View is the filtered state of one request: the snapshot it was computed
// from, the resolved filter, and the matching rows.
type View struct {
	Dataset *dataset.Dataset
	Filter  Filter
	Rows    []models.JobPosting
}

// Resolve loads the dataset, resolves the request against it and filters.
func (s *DashboardService) Resolve(ctx context.Context, req dtos.FilterRequest) (*View, error) {
	ds, err := s.Store.Get(ctx)
	if err != nil {
		return nil, err
	}
	f, err := ResolveFilter(req, ds)
	if err != nil {
		return nil, err
	}
	return &View{
		Dataset: ds,
		Filter:  f,
		Rows:    FilterPostings(ds.Rows, f),
	}, nil
}

// Dashboard resolves req and renders the full dashboard.
func (s *DashboardService) Dashboard(ctx context.Context, req dtos.FilterRequest) (*dtos.DashboardResponse, error) {
	ds, err := s.Store.Get(ctx)
	if err != nil {
		return nil, err
	}
	f, err := ResolveFilter(req, ds)
	if err != nil {
		return nil, err
	}
	resp := Render(ds, f)
	return &resp, nil
}

// Render is the pure dashboard computation. It never fails on an empty
// selection: counts are zero and the aggregate slices are empty.
func Render(ds *dataset.Dataset, f Filter) dtos.DashboardResponse {
	rows := FilterPostings(ds.Rows, f)
	minExp, maxExp := ds.ExperienceBounds()

	genders := []string{dtos.AllOption}
	for _, g := range models.Genders {
		genders = append(genders, string(g))
	}

	return dtos.DashboardResponse{
		Title:     DashboardTitle,
		Question:  DashboardQuestion,
		Intro:     DashboardIntro,
		Selection: f.Selection(),
		Options: dtos.FilterOptions{
			Regions:       append([]string{dtos.AllOption}, ds.Regions()...),
			Genders:       genders,
			ExperienceMin: minExp,
			ExperienceMax: maxExp,
		},
		TotalCount:   ds.Len(),
		MatchCount:   len(rows),
		Preview:      Preview(rows, PreviewRows),
		RegionCounts: RegionCounts(rows),
		Experience:   ExperienceHistogram(rows, HistogramBins),
		GenderShares: GenderShares(rows),
		Commentary:   StaticCommentary(),
	}
}

// Preview returns the first n rows restricted to the display columns.
func Preview(rows []models.JobPosting, n int) []dtos.PreviewRow {
	if len(rows) < n {
		n = len(rows)
	}
	out := make([]dtos.PreviewRow, n)
	for i := 0; i < n; i++ {
		out[i] = dtos.PreviewRow{
			JobTitle:        rows[i].JobTitle,
			CompanyName:     rows[i].CompanyName,
			Region:          rows[i].Region,
			ExperienceYears: rows[i].ExperienceYears,
			Gender:          rows[i].Gender,
		}
	}
	return out
}

// Page slices rows for the postings endpoint.
func Page(rows []models.JobPosting, limit, offset int) []models.JobPosting {
	if offset >= len(rows) {
		return []models.JobPosting{}
	}
	end := offset + limit
	if limit <= 0 || end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}
