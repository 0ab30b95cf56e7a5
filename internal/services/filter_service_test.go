package services

import (
	"reflect"
	"testing"

	"github.com/justsurfingit/jadarat-dashboard/internal/apperrors"
	"github.com/justsurfingit/jadarat-dashboard/internal/dataset"
	"github.com/justsurfingit/jadarat-dashboard/internal/dtos"
	"github.com/justsurfingit/jadarat-dashboard/internal/models"
)

func intPtr(v int) *int { return &v }

func twoRowDataset() *dataset.Dataset {
	return dataset.New([]models.JobPosting{
		{JobTitle: "Accountant", Region: "Riyadh", Gender: models.GenderMale, ExperienceYears: 2},
		{JobTitle: "Nurse", Region: "Jeddah", Gender: models.GenderFemale, ExperienceYears: 5},
	}, 1)
}

func sampleDataset() *dataset.Dataset {
	return dataset.New([]models.JobPosting{
		{JobTitle: "Accountant", CompanyName: "Acme", Region: "Riyadh", Gender: models.GenderMale, ExperienceYears: 2},
		{JobTitle: "Nurse", CompanyName: "Care", Region: "Jeddah", Gender: models.GenderFemale, ExperienceYears: 5},
		{JobTitle: "Cashier", CompanyName: "Mart", Region: "Riyadh", Gender: models.GenderBoth, ExperienceYears: 0},
		{JobTitle: "Engineer", CompanyName: "Build", Region: "Riyadh", Gender: models.GenderMale, ExperienceYears: 8},
		{JobTitle: "Teacher", CompanyName: "School", Region: "Makkah", Gender: models.GenderFemale, ExperienceYears: 3},
		{JobTitle: "Driver", CompanyName: "Move", Region: "Jeddah", Gender: models.GenderMale, ExperienceYears: 1},
		{JobTitle: "Chef", CompanyName: "Food", Region: "Makkah", Gender: models.GenderBoth, ExperienceYears: 10},
	}, 1)
}

func titles(rows []models.JobPosting) []string {
	out := []string{}
	for _, r := range rows {
		out = append(out, r.JobTitle)
	}
	return out
}

func TestFilterScenarios(t *testing.T) {
	ds := twoRowDataset()

	testCases := []struct {
		name     string
		req      dtos.FilterRequest
		expected []string
	}{
		{"region only", dtos.FilterRequest{Region: "Riyadh", Gender: "all", ExperienceMin: intPtr(0), ExperienceMax: intPtr(10)}, []string{"Accountant"}},
		{"experience only", dtos.FilterRequest{ExperienceMin: intPtr(3), ExperienceMax: intPtr(10)}, []string{"Nurse"}},
		{"absent region", dtos.FilterRequest{Region: "Dammam"}, []string{}},
		{"defaults", dtos.FilterRequest{}, []string{"Accountant", "Nurse"}},
		{"gender", dtos.FilterRequest{Gender: "female"}, []string{"Nurse"}},
		{"arabic gender", dtos.FilterRequest{Gender: "ذكر"}, []string{"Accountant"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := ResolveFilter(tc.req, ds)
			if err != nil {
				t.Fatalf("ResolveFilter returned error: %v", err)
			}
			got := titles(FilterPostings(ds.Rows, f))
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("FilterPostings = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestFilterBoundsAreInclusive(t *testing.T) {
	ds := twoRowDataset()
	f, err := ResolveFilter(dtos.FilterRequest{ExperienceMin: intPtr(2), ExperienceMax: intPtr(5)}, ds)
	if err != nil {
		t.Fatalf("ResolveFilter returned error: %v", err)
	}
	if got := len(FilterPostings(ds.Rows, f)); got != 2 {
		t.Errorf("Expected rows at both bounds to be kept, got %d", got)
	}

	f, _ = ResolveFilter(dtos.FilterRequest{ExperienceMin: intPtr(3), ExperienceMax: intPtr(4)}, ds)
	if got := len(FilterPostings(ds.Rows, f)); got != 0 {
		t.Errorf("Expected no rows strictly between, got %d", got)
	}
}

func TestFilterDefaultsReproduceDataset(t *testing.T) {
	ds := sampleDataset()
	f, err := ResolveFilter(dtos.FilterRequest{Region: "ALL", Gender: "All"}, ds)
	if err != nil {
		t.Fatalf("ResolveFilter returned error: %v", err)
	}
	if f.ExperienceMin != 0 || f.ExperienceMax != 10 {
		t.Errorf("Expected defaults to match dataset bounds, got [%d, %d]", f.ExperienceMin, f.ExperienceMax)
	}
	if got := FilterPostings(ds.Rows, f); !reflect.DeepEqual(got, ds.Rows) {
		t.Errorf("Expected the whole dataset, got %d of %d rows", len(got), ds.Len())
	}
}

func TestFilterIsConjunctive(t *testing.T) {
	ds := sampleDataset()
	regions := append([]string{dtos.AllOption}, ds.Regions()...)
	genders := []string{dtos.AllOption, "male", "female", "both"}
	ranges := [][2]int{{0, 10}, {0, 2}, {3, 8}, {5, 5}, {11, 20}}

	for _, region := range regions {
		for _, gender := range genders {
			for _, rg := range ranges {
				combined, err := ResolveFilter(dtos.FilterRequest{Region: region, Gender: gender, ExperienceMin: intPtr(rg[0]), ExperienceMax: intPtr(rg[1])}, ds)
				if err != nil {
					t.Fatalf("ResolveFilter returned error: %v", err)
				}
				byRegion, _ := ResolveFilter(dtos.FilterRequest{Region: region}, ds)
				byGender, _ := ResolveFilter(dtos.FilterRequest{Gender: gender}, ds)
				byExp, _ := ResolveFilter(dtos.FilterRequest{ExperienceMin: intPtr(rg[0]), ExperienceMax: intPtr(rg[1])}, ds)

				got := FilterPostings(ds.Rows, combined)
				if len(got) > ds.Len() {
					t.Fatalf("Filtered count %d exceeds total %d", len(got), ds.Len())
				}

				var want []models.JobPosting
				for _, row := range ds.Rows {
					if byRegion.Matches(row) && byGender.Matches(row) && byExp.Matches(row) {
						want = append(want, row)
					}
				}
				if !reflect.DeepEqual(titles(got), titles(want)) {
					t.Errorf("%s: combined = %v, intersection = %v", combined.Key(), titles(got), titles(want))
				}
			}
		}
	}
}

func TestResolveFilterRejectsInvalidInput(t *testing.T) {
	ds := twoRowDataset()

	_, err := ResolveFilter(dtos.FilterRequest{ExperienceMin: intPtr(6), ExperienceMax: intPtr(3)}, ds)
	if !apperrors.Is(err, apperrors.ErrTypeInvalidInput) {
		t.Errorf("Expected INVALID_INPUT for inverted range, got %v", err)
	}

	_, err = ResolveFilter(dtos.FilterRequest{ExperienceMin: intPtr(9)}, ds)
	if !apperrors.Is(err, apperrors.ErrTypeInvalidInput) {
		t.Errorf("Expected INVALID_INPUT when min exceeds the default max, got %v", err)
	}

	_, err = ResolveFilter(dtos.FilterRequest{Gender: "robot"}, ds)
	if !apperrors.Is(err, apperrors.ErrTypeInvalidInput) {
		t.Errorf("Expected INVALID_INPUT for unknown gender, got %v", err)
	}
}

func TestFilterKeyIsNormalised(t *testing.T) {
	ds := twoRowDataset()
	a, _ := ResolveFilter(dtos.FilterRequest{Gender: "ذكر"}, ds)
	b, _ := ResolveFilter(dtos.FilterRequest{Region: "all", Gender: "MALE", ExperienceMin: intPtr(2), ExperienceMax: intPtr(5)}, ds)
	if a.Key() != b.Key() {
		t.Errorf("Expected equivalent selections to share a key: %q vs %q", a.Key(), b.Key())
	}
}
