package dataset

import "github.com/justsurfingit/jadarat-dashboard/internal/models"

// Dataset is an immutable, loaded snapshot of the postings.
type Dataset struct {
	Rows []models.JobPosting

	// Version changes every time the store loads a new snapshot.
	Version uint64

	minExperience int
	maxExperience int
	regions       []string
}

// New derives the experience bounds and region list from rows.
func New(rows []models.JobPosting, version uint64) *Dataset {
	d := &Dataset{Rows: rows, Version: version}

	seen := make(map[string]struct{})
	for i, row := range rows {
		if i == 0 || row.ExperienceYears < d.minExperience {
			d.minExperience = row.ExperienceYears
		}
		if i == 0 || row.ExperienceYears > d.maxExperience {
			d.maxExperience = row.ExperienceYears
		}
		if _, ok := seen[row.Region]; !ok {
			seen[row.Region] = struct{}{}
			d.regions = append(d.regions, row.Region)
		}
	}
	return d
}

func (d *Dataset) Len() int {
	return len(d.Rows)
}

// ExperienceBounds returns the observed minimum and maximum required
// experience. Both are zero for an empty dataset.
func (d *Dataset) ExperienceBounds() (int, int) {
	return d.minExperience, d.maxExperience
}

// Regions lists distinct regions in order of first appearance.
func (d *Dataset) Regions() []string {
	out := make([]string, len(d.regions))
	copy(out, d.regions)
	return out
}
