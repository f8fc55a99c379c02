package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/glbpack/pkg/benchstats"
)

func TestRender(t *testing.T) {
	comparisons := []benchstats.Comparison{
		{
			Benchmark: "texture_load_1",
			Metric:    benchstats.MetricNames[0],
			Series: []benchstats.Series{
				{Name: "baseline", Agg: benchstats.Aggregate{Min: 1, Mean: 2, Median: 2, Max: 3}},
				{Name: "candidate", Agg: benchstats.Aggregate{Min: 1.5, Mean: 2.5, Median: 2.5, Max: 4}},
			},
		},
		{
			Benchmark: "texture_load_1",
			Metric:    benchstats.MetricNames[1],
			Series: []benchstats.Series{
				{Name: "baseline", Agg: benchstats.Aggregate{Min: 1, Mean: 1, Median: 1, Max: 1}},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "Benchmark comparison", comparisons))

	html := buf.String()
	assert.Contains(t, html, "Benchmark comparison")
	assert.Contains(t, html, "texture_load_1")
	assert.Contains(t, html, "baseline")
	assert.Contains(t, html, "candidate")
	assert.Contains(t, html, "echarts")
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "empty", nil))
	assert.NotZero(t, buf.Len())
}
