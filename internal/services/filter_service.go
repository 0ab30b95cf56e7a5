package services

import (
	"fmt"
	"strings"

	"github.com/justsurfingit/jadarat-dashboard/internal/apperrors"
	"github.com/justsurfingit/jadarat-dashboard/internal/dataset"
	"github.com/justsurfingit/jadarat-dashboard/internal/dtos"
	"github.com/justsurfingit/jadarat-dashboard/internal/models"
)

// Filter is a resolved filter selection. Region and Gender use
// dtos.AllOption to mean "no restriction".
type Filter struct {
	Region        string
	Gender        string
	ExperienceMin int
	ExperienceMax int
}

// ResolveFilter fills in defaults from the dataset and validates the result.
// Missing experience bounds default to the dataset's observed range.
func ResolveFilter(req dtos.FilterRequest, ds *dataset.Dataset) (Filter, error) {
	minExp, maxExp := ds.ExperienceBounds()

	f := Filter{
		Region:        strings.TrimSpace(req.Region),
		Gender:        strings.ToLower(strings.TrimSpace(req.Gender)),
		ExperienceMin: minExp,
		ExperienceMax: maxExp,
	}
	if f.Region == "" || strings.EqualFold(f.Region, dtos.AllOption) {
		f.Region = dtos.AllOption
	}
	if f.Gender == "" {
		f.Gender = dtos.AllOption
	} else if g, ok := models.ParseGender(f.Gender); ok {
		f.Gender = string(g)
	}
	if req.ExperienceMin != nil {
		f.ExperienceMin = *req.ExperienceMin
	}
	if req.ExperienceMax != nil {
		f.ExperienceMax = *req.ExperienceMax
	}

	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

func (f Filter) Validate() error {
	if f.ExperienceMin > f.ExperienceMax {
		return apperrors.InvalidInput(fmt.Sprintf("experience range [%d, %d] is inverted", f.ExperienceMin, f.ExperienceMax), nil)
	}
	if f.Gender != dtos.AllOption {
		if _, ok := models.ParseGender(f.Gender); !ok {
			return apperrors.InvalidInput(fmt.Sprintf("unknown gender %q", f.Gender), nil)
		}
	}
	return nil
}

// Matches applies the three conditions conjunctively. Experience bounds are
// inclusive.
func (f Filter) Matches(p models.JobPosting) bool {
	if f.Region != dtos.AllOption && p.Region != f.Region {
		return false
	}
	if f.Gender != dtos.AllOption {
		g, _ := models.ParseGender(f.Gender)
		if p.Gender != g {
			return false
		}
	}
	return p.ExperienceYears >= f.ExperienceMin && p.ExperienceYears <= f.ExperienceMax
}

// Key is a stable string form used for cache keys.
func (f Filter) Key() string {
	return fmt.Sprintf("r=%s|g=%s|e=%d-%d", f.Region, f.Gender, f.ExperienceMin, f.ExperienceMax)
}

func (f Filter) Selection() dtos.FilterSelection {
	return dtos.FilterSelection{
		Region:        f.Region,
		Gender:        f.Gender,
		ExperienceMin: f.ExperienceMin,
		ExperienceMax: f.ExperienceMax,
	}
}

// FilterPostings returns the rows matching f in their original order. The
// input is not modified.
func FilterPostings(rows []models.JobPosting, f Filter) []models.JobPosting {
	out := make([]models.JobPosting, 0, len(rows))
	for _, row := range rows {
		if f.Matches(row) {
			out = append(out, row)
		}
	}
	return out
}
