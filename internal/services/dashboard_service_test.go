package services

import (
	"context"
	"strings"
	"testing"

	"github.com/justsurfingit/jadarat-dashboard/internal/dataset"
	"github.com/justsurfingit/jadarat-dashboard/internal/dtos"
	"go.uber.org/zap"
)

func TestRenderFullSelection(t *testing.T) {
	ds := sampleDataset()
	f, _ := ResolveFilter(dtos.FilterRequest{}, ds)
	d := Render(ds, f)

	if d.TotalCount != 7 || d.MatchCount != 7 {
		t.Errorf("Expected 7/7 rows, got %d/%d", d.MatchCount, d.TotalCount)
	}
	if len(d.Preview) != PreviewRows {
		t.Fatalf("Expected %d preview rows, got %d", PreviewRows, len(d.Preview))
	}
	if d.Preview[0].JobTitle != "Accountant" || d.Preview[4].JobTitle != "Teacher" {
		t.Errorf("Expected preview in dataset order, got %+v", d.Preview)
	}
	if d.RegionCounts[0].Region != "Riyadh" || d.RegionCounts[0].Count != 3 {
		t.Errorf("Expected Riyadh first, got %+v", d.RegionCounts[0])
	}
	if len(d.Experience.Bins) != HistogramBins {
		t.Errorf("Expected %d bins, got %d", HistogramBins, len(d.Experience.Bins))
	}
	if d.Options.Regions[0] != dtos.AllOption || len(d.Options.Regions) != 4 {
		t.Errorf("Unexpected region options: %v", d.Options.Regions)
	}
	if len(d.Options.Genders) != 4 || d.Options.ExperienceMax != 10 {
		t.Errorf("Unexpected options: %+v", d.Options)
	}
	if len(d.Commentary.Findings) != 3 || d.Commentary.Closing == "" {
		t.Errorf("Expected static commentary, got %+v", d.Commentary)
	}
}

func TestRenderEmptySelection(t *testing.T) {
	ds := twoRowDataset()
	f, err := ResolveFilter(dtos.FilterRequest{Region: "Dammam"}, ds)
	if err != nil {
		t.Fatalf("ResolveFilter returned error: %v", err)
	}
	d := Render(ds, f)

	if d.MatchCount != 0 || d.TotalCount != 2 {
		t.Errorf("Expected 0 of 2 rows, got %d of %d", d.MatchCount, d.TotalCount)
	}
	if len(d.Preview) != 0 || len(d.RegionCounts) != 0 || len(d.Experience.Bins) != 0 || len(d.GenderShares) != 0 {
		t.Errorf("Expected empty aggregates, got %+v", d)
	}
	if d.Selection.Region != "Dammam" {
		t.Errorf("Expected selection to echo the region, got %q", d.Selection.Region)
	}
}

func TestDashboardServiceUsesStore(t *testing.T) {
	store := dataset.NewStore(dataset.StaticSource{Rows: sampleDataset().Rows}, zap.NewNop(), false)
	svc := NewDashboardService(store)

	d, err := svc.Dashboard(context.Background(), dtos.FilterRequest{Region: "Makkah", Gender: "female"})
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	if d.MatchCount != 1 || d.Preview[0].JobTitle != "Teacher" {
		t.Errorf("Unexpected dashboard: %+v", d.Preview)
	}

	view, err := svc.Resolve(context.Background(), dtos.FilterRequest{Gender: "male"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(view.Rows) != 3 || view.Dataset.Len() != 7 {
		t.Errorf("Expected 3 of 7 rows, got %d of %d", len(view.Rows), view.Dataset.Len())
	}

	if _, err := svc.Dashboard(context.Background(), dtos.FilterRequest{ExperienceMin: intPtr(5), ExperienceMax: intPtr(1)}); err == nil {
		t.Error("Expected an inverted range to fail")
	}
}

func TestPage(t *testing.T) {
	rows := sampleDataset().Rows

	if got := Page(rows, 3, 0); len(got) != 3 || got[0].JobTitle != "Accountant" {
		t.Errorf("Unexpected first page: %v", titles(got))
	}
	if got := Page(rows, 3, 6); len(got) != 1 || got[0].JobTitle != "Chef" {
		t.Errorf("Unexpected last page: %v", titles(got))
	}
	if got := Page(rows, 3, 20); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil page past the end, got %v", got)
	}
}

func TestCommentaryWithoutClient(t *testing.T) {
	svc, err := NewCommentaryService(context.Background(), "", "gemini-2.5-flash", 0, zap.NewNop())
	if err != nil {
		t.Fatalf("NewCommentaryService returned error: %v", err)
	}
	d := &dtos.DashboardResponse{MatchCount: 4}
	c := svc.Insight(context.Background(), d)
	if c.AIInsight != "" || len(c.Findings) != 3 {
		t.Errorf("Expected static commentary only, got %+v", c)
	}

	var nilSvc *CommentaryService
	if got := nilSvc.Insight(context.Background(), d); got.Closing == "" {
		t.Error("Expected nil service to return static commentary")
	}
}

func TestDescribeStats(t *testing.T) {
	ds := sampleDataset()
	f, _ := ResolveFilter(dtos.FilterRequest{}, ds)
	d := Render(ds, f)

	text := describeStats(&d)
	for _, want := range []string{"matching postings: 7 of 7", "Riyadh=3", "Male=42.9%"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in prompt statistics:\n%s", want, text)
		}
	}
	if sel := describeSelection(d.Selection); sel != "region=all, gender=all, experience=0-10 years" {
		t.Errorf("describeSelection = %q", sel)
	}
}
