// Package report renders benchmark comparisons as a self-contained HTML
// page of charts, one bar chart per benchmark and metric.
package report

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Faultbox/glbpack/pkg/benchstats"
)

var barLabels = []string{"Min", "Mean", "Median", "Max"}

// Render writes an HTML page charting every comparison to w. Each chart
// carries one series per result set, the baseline first.
func Render(w io.Writer, title string, comparisons []benchstats.Comparison) error {
	page := components.NewPage()
	page.PageTitle = title

	for _, cmp := range comparisons {
		page.AddCharts(comparisonChart(cmp))
	}
	return page.Render(w)
}

func comparisonChart(cmp benchstats.Comparison) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: cmp.Benchmark, Subtitle: cmp.Metric}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)

	bar.SetXAxis(barLabels)
	for _, s := range cmp.Series {
		bar.AddSeries(s.Name, []opts.BarData{
			{Value: s.Agg.Min},
			{Value: s.Agg.Mean},
			{Value: s.Agg.Median},
			{Value: s.Agg.Max},
		})
	}
	return bar
}
