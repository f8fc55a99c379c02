// Package benchstats reads per-frame benchmark results from CSV files and
// aggregates them for comparison against a baseline run.
//
// A result file holds one row per rendered frame: the frame number followed
// by one column per metric in MetricNames order.
package benchstats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MetricNames lists the per-frame metric columns of a benchmark result, in
// the column order following the frame number.
var MetricNames = []string{
	"Pipeline GPU time (ms)",
	"Frame CPU time (ms)",
}

// ErrBadFormat marks a result file whose rows do not match the expected
// frame,metric... layout.
var ErrBadFormat = errors.New("benchstats: invalid result format")

// FrameSample holds the measurements of a single frame.
type FrameSample struct {
	Frame   int
	Metrics []float64
}

// Results is the ordered set of per-frame samples from one benchmark run.
type Results struct {
	Samples []FrameSample
}

// ReadResults parses benchmark CSV rows from r. Frames numbered 1 through
// skipFrames are discarded; the first frame usually carries setup cost.
func ReadResults(r io.Reader, skipFrames int) (*Results, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var res Results
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
		}
		if len(row) < len(MetricNames)+1 {
			return nil, fmt.Errorf("%w: row has %d columns, want %d",
				ErrBadFormat, len(row), len(MetricNames)+1)
		}

		frame, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: frame number %q", ErrBadFormat, row[0])
		}
		if frame < 0 {
			return nil, fmt.Errorf("%w: negative frame number %d", ErrBadFormat, frame)
		}
		if frame <= skipFrames {
			continue
		}

		metrics := make([]float64, len(MetricNames))
		for i := range metrics {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: metric value %q", ErrBadFormat, row[i+1])
			}
			metrics[i] = v
		}
		res.Samples = append(res.Samples, FrameSample{Frame: frame, Metrics: metrics})
	}
	return &res, nil
}

// Aggregate summarizes one metric across all frames of a run.
type Aggregate struct {
	Name   string
	Min    float64
	Mean   float64
	Median float64
	Max    float64
}

// Metric aggregates the metric at index i across all samples.
func (r *Results) Metric(i int) Aggregate {
	agg := Aggregate{Name: MetricNames[i]}
	if len(r.Samples) == 0 {
		return agg
	}

	data := make([]float64, 0, len(r.Samples))
	for _, s := range r.Samples {
		data = append(data, s.Metrics[i])
	}
	sort.Float64s(data)

	agg.Min = floats.Min(data)
	agg.Mean = stat.Mean(data, nil)
	agg.Median = median(data)
	agg.Max = floats.Max(data)
	return agg
}

// median of sorted data; an even-length input takes the midpoint of the
// middle pair.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// PercentDiff returns the percentage difference of other over base.
func PercentDiff(base, other float64) float64 {
	if base == 0 {
		base = 1e-10
	}
	return (other - base) * 100 / base
}

// CollectResultFiles maps benchmark names to their CSV result paths under
// dir, searching recursively.
func CollectResultFiles(dir string) (map[string]string, error) {
	files := make(map[string]string)
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".csv") {
			return nil
		}
		files[strings.TrimSuffix(d.Name(), ".csv")] = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Series is one run's aggregate for a single benchmark metric.
type Series struct {
	Name string
	Agg  Aggregate
}

// Comparison groups every run's aggregates for one benchmark and metric,
// baseline first.
type Comparison struct {
	Benchmark string
	Metric    string
	Series    []Series
}
