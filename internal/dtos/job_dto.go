package dtos

import "github.com/justsurfingit/jadarat-dashboard/internal/models"

// AllOption is the "no filter" value for region and gender.
const AllOption = "all"

// FilterRequest binds the dashboard query string. Pointers distinguish an
// absent experience bound from an explicit zero.
type FilterRequest struct {
	Region        string `form:"region"`
	Gender        string `form:"gender"`
	ExperienceMin *int   `form:"exp_min"`
	ExperienceMax *int   `form:"exp_max"`
}

type PageRequest struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=1000"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

type PreviewRow struct {
	JobTitle        string        `json:"job_title"`
	CompanyName     string        `json:"company_name"`
	Region          string        `json:"region"`
	ExperienceYears int           `json:"experience_years"`
	Gender          models.Gender `json:"gender"`
}

type RegionCount struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

type HistogramBin struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

type DensityPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Histogram struct {
	Bins    []HistogramBin `json:"bins"`
	Density []DensityPoint `json:"density,omitempty"`
}

type GenderShare struct {
	Gender  models.Gender `json:"gender"`
	Label   string        `json:"label"`
	Count   int           `json:"count"`
	Percent float64       `json:"percent"`
}

type FilterSelection struct {
	Region        string `json:"region"`
	Gender        string `json:"gender"`
	ExperienceMin int    `json:"exp_min"`
	ExperienceMax int    `json:"exp_max"`
}

// FilterOptions feeds the filter controls.
type FilterOptions struct {
	Regions       []string `json:"regions"`
	Genders       []string `json:"genders"`
	ExperienceMin int      `json:"exp_min"`
	ExperienceMax int      `json:"exp_max"`
}

type Commentary struct {
	Findings  []string `json:"findings"`
	Closing   string   `json:"closing"`
	AIInsight string   `json:"ai_insight,omitempty"`
}

type DashboardResponse struct {
	Title        string          `json:"title"`
	Question     string          `json:"question"`
	Intro        string          `json:"intro"`
	Selection    FilterSelection `json:"selection"`
	Options      FilterOptions   `json:"options"`
	TotalCount   int             `json:"total_count"`
	MatchCount   int             `json:"match_count"`
	Preview      []PreviewRow    `json:"preview"`
	RegionCounts []RegionCount   `json:"region_counts"`
	Experience   Histogram       `json:"experience"`
	GenderShares []GenderShare   `json:"gender_shares"`
	Commentary   Commentary      `json:"commentary"`
}

type PostingsResponse struct {
	Total    int                 `json:"total"`
	Limit    int                 `json:"limit"`
	Offset   int                 `json:"offset"`
	Postings []models.JobPosting `json:"postings"`
}
