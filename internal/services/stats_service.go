package services

import (
	"math"
	"sort"

	"github.com/justsurfingit/jadarat-dashboard/internal/dtos"
	"github.com/justsurfingit/jadarat-dashboard/internal/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	HistogramBins = 10
	densityPoints = 200
)

// RegionCounts counts postings per region, most frequent first. Ties keep
// the order in which regions first appear.
func RegionCounts(rows []models.JobPosting) []dtos.RegionCount {
	index := make(map[string]int)
	var counts []dtos.RegionCount
	for _, row := range rows {
		i, ok := index[row.Region]
		if !ok {
			i = len(counts)
			index[row.Region] = i
			counts = append(counts, dtos.RegionCount{Region: row.Region})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})
	return counts
}

// ExperienceHistogram splits the observed experience range of rows into
// equal-width bins. The last bin is closed on the right. A single distinct
// value is centred in a range of width one. The density curve is a Gaussian
// KDE scaled to counts and is omitted when it cannot be estimated.
func ExperienceHistogram(rows []models.JobPosting, bins int) dtos.Histogram {
	if len(rows) == 0 || bins <= 0 {
		return dtos.Histogram{}
	}

	values := experienceValues(rows)
	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)

	out := dtos.Histogram{Bins: make([]dtos.HistogramBin, bins)}
	for i := range out.Bins {
		out.Bins[i].Min = lo + float64(i)*width
		out.Bins[i].Max = lo + float64(i+1)*width
	}
	out.Bins[bins-1].Max = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out.Bins[i].Count++
	}

	out.Density = densityCurve(values, width)
	return out
}

// densityCurve evaluates a Gaussian KDE with Scott's bandwidth over the data
// range, scaled by n*binWidth so it overlays a count histogram.
func densityCurve(values []float64, binWidth float64) []dtos.DensityPoint {
	n := float64(len(values))
	if len(values) < 2 {
		return nil
	}
	sd := stat.StdDev(values, nil)
	if sd == 0 || math.IsNaN(sd) {
		return nil
	}
	bandwidth := sd * math.Pow(n, -1.0/5.0)
	kernel := distuv.Normal{Mu: 0, Sigma: bandwidth}

	lo, hi := floats.Min(values), floats.Max(values)
	step := (hi - lo) / float64(densityPoints-1)
	points := make([]dtos.DensityPoint, densityPoints)
	for i := range points {
		x := lo + float64(i)*step
		var sum float64
		for _, v := range values {
			sum += kernel.Prob(x - v)
		}
		// sum/n is the density; times n*binWidth gives expected counts.
		points[i] = dtos.DensityPoint{X: x, Y: sum * binWidth}
	}
	return points
}

// GenderShares returns count and percentage per gender, most frequent first.
// Percentages are rounded to one decimal.
func GenderShares(rows []models.JobPosting) []dtos.GenderShare {
	if len(rows) == 0 {
		return nil
	}
	counts := make(map[models.Gender]int)
	var order []models.Gender
	for _, row := range rows {
		if _, ok := counts[row.Gender]; !ok {
			order = append(order, row.Gender)
		}
		counts[row.Gender]++
	}

	shares := make([]dtos.GenderShare, 0, len(order))
	for _, g := range order {
		pct := float64(counts[g]) / float64(len(rows)) * 100
		shares = append(shares, dtos.GenderShare{
			Gender:  g,
			Label:   g.Label(),
			Count:   counts[g],
			Percent: math.Round(pct*10) / 10,
		})
	}
	sort.SliceStable(shares, func(a, b int) bool {
		return shares[a].Count > shares[b].Count
	})
	return shares
}

func experienceValues(rows []models.JobPosting) []float64 {
	values := make([]float64, len(rows))
	for i, row := range rows {
		values[i] = float64(row.ExperienceYears)
	}
	return values
}
