package usecase

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/pcastellanos/hubblefit/internal/domain"
	"github.com/pcastellanos/hubblefit/internal/ports"
)

// ColumnSummary holds descriptive statistics for one catalog column.
type ColumnSummary struct {
	Name string
	Unit string

	N      int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
	Q1     float64
	Q3     float64
}

// HistogramBin is one bucket of a uniform-width histogram.
type HistogramBin struct {
	Lo    float64
	Hi    float64
	Count int
}

// CatalogSummary is the output of an inspect run.
type CatalogSummary struct {
	Source    string
	Columns   []ColumnSummary
	Histogram []HistogramBin // velocity distribution
}

// Inspect computes descriptive statistics over a catalog without fitting.
type Inspect struct {
	catalogs ports.CatalogLoader
}

func NewInspect(cl ports.CatalogLoader) *Inspect {
	return &Inspect{catalogs: cl}
}

func (uc *Inspect) Execute(path string, histogramBins int) (CatalogSummary, error) {
	cat, err := uc.catalogs.LoadCatalog(path)
	if err != nil {
		return CatalogSummary{}, err
	}
	if cat.Len() == 0 {
		return CatalogSummary{}, &domain.OpError{
			Op:   "inspect",
			Kind: domain.KindInsufficientData,
			Path: path,
			Err:  fmt.Errorf("empty catalog: %w", domain.ErrInsufficientData),
		}
	}

	cols := []struct {
		name string
		unit string
		data []float64
	}{
		{"distance", "Mpc", cat.DistancesMpc},
		{"velocity", "km/s", cat.VelocitiesKms},
		{"uncertainty", "km/s", cat.UncertaintiesKms},
	}

	out := CatalogSummary{Source: cat.Source}
	for _, c := range cols {
		s, err := summarize(c.name, c.unit, c.data)
		if err != nil {
			return CatalogSummary{}, &domain.OpError{
				Op:   "inspect.summarize",
				Kind: domain.KindExecution,
				Path: path,
				Err:  err,
			}
		}
		out.Columns = append(out.Columns, s)
	}

	if histogramBins > 0 {
		out.Histogram = Histogram(cat.VelocitiesKms, histogramBins)
	}
	return out, nil
}

func summarize(name, unit string, data []float64) (ColumnSummary, error) {
	d := stats.Float64Data(data)

	min, err := d.Min()
	if err != nil {
		return ColumnSummary{}, err
	}
	max, err := d.Max()
	if err != nil {
		return ColumnSummary{}, err
	}
	mean, err := d.Mean()
	if err != nil {
		return ColumnSummary{}, err
	}
	median, err := d.Median()
	if err != nil {
		return ColumnSummary{}, err
	}
	sd, err := d.StandardDeviation()
	if err != nil {
		return ColumnSummary{}, err
	}
	q, err := stats.Quartile(d)
	if err != nil {
		return ColumnSummary{}, err
	}

	return ColumnSummary{
		Name:   name,
		Unit:   unit,
		N:      len(data),
		Min:    min,
		Max:    max,
		Mean:   mean,
		Median: median,
		StdDev: sd,
		Q1:     q.Q1,
		Q3:     q.Q3,
	}, nil
}

// Histogram buckets data into nBins uniform bins spanning [min, max]. The last
// bin's upper edge is inclusive so the maximum lands in a bin.
func Histogram(data []float64, nBins int) []HistogramBin {
	if len(data) == 0 || nBins <= 0 {
		return nil
	}

	min, max := data[0], data[0]
	for _, v := range data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return []HistogramBin{{Lo: min, Hi: max, Count: len(data)}}
	}

	width := (max - min) / float64(nBins)
	bins := make([]HistogramBin, nBins)
	for i := range bins {
		bins[i].Lo = min + float64(i)*width
		bins[i].Hi = min + float64(i+1)*width
	}
	bins[nBins-1].Hi = max

	for _, v := range data {
		idx := int((v - min) / width)
		if idx >= nBins {
			idx = nBins - 1
		}
		bins[idx].Count++
	}
	return bins
}
