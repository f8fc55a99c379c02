// benchcompare compares sets of benchmark results, using the first results
// directory as the baseline. Each directory holds one CSV file per
// benchmark; matching file names are compared metric by metric.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Faultbox/glbpack/internal/report"
	"github.com/Faultbox/glbpack/pkg/benchstats"
)

var (
	flagIgnoreFrames = flag.Int("ignore-first-frames", 1,
		"Ignore frames 1..N of every result; the first frame usually carries setup cost")
	flagHTML = flag.String("html", "", "Also write an HTML chart report to this file")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: at least two result directories are required (baseline first)")
		printUsage()
		os.Exit(1)
	}

	dirs := make([]string, flag.NArg())
	names := make([]string, flag.NArg())
	for i, d := range flag.Args() {
		dirs[i] = filepath.Clean(d)
		names[i] = filepath.Base(dirs[i])
		if info, err := os.Stat(dirs[i]); err != nil || !info.IsDir() {
			fmt.Fprintf(os.Stderr, "Error: %s is not a valid directory\n", d)
			os.Exit(1)
		}
	}

	comparisons, err := compare(dirs, names, *flagIgnoreFrames)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *flagHTML != "" {
		if err := writeHTML(*flagHTML, comparisons); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `benchcompare - compare benchmark results against a baseline

Usage:
  benchcompare [options] <baseline_dir> <other_dir> [more_dirs...]

Options:
  -ignore-first-frames <n>  Ignore frames 1..N of every result (default 1)
  -html <file>              Also write an HTML chart report

Example:
  benchcompare results_main results_branch -html compare.html`)
}

// compare prints the textual comparison and returns the aggregates for the
// HTML report.
func compare(dirs, names []string, skipFrames int) ([]benchstats.Comparison, error) {
	resultSets := make([]map[string]string, len(dirs))
	for i, dir := range dirs {
		files, err := benchstats.CollectResultFiles(dir)
		if err != nil {
			return nil, err
		}
		resultSets[i] = files
	}

	benchmarks := make([]string, 0, len(resultSets[0]))
	for name := range resultSets[0] {
		benchmarks = append(benchmarks, name)
	}
	sort.Strings(benchmarks)

	var comparisons []benchstats.Comparison
	for _, bench := range benchmarks {
		fmt.Printf("Benchmark %s:\n", bench)

		base, err := readResults(resultSets[0][bench], skipFrames)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", bench, err)
			continue
		}

		for m := range benchstats.MetricNames {
			baseAgg := base.Metric(m)
			printBaseline(names[0], baseAgg)

			cmp := benchstats.Comparison{
				Benchmark: bench,
				Metric:    baseAgg.Name,
				Series:    []benchstats.Series{{Name: names[0], Agg: baseAgg}},
			}

			for i := 1; i < len(resultSets); i++ {
				path, ok := resultSets[i][bench]
				if !ok {
					fmt.Printf("\t[%s] No data\n", names[i])
					continue
				}
				other, err := readResults(path, skipFrames)
				if err != nil {
					fmt.Fprintf(os.Stderr, "skipping %s in %s: %v\n", bench, names[i], err)
					continue
				}
				otherAgg := other.Metric(m)
				printComparison(names[0], names[i], baseAgg, otherAgg)
				cmp.Series = append(cmp.Series, benchstats.Series{Name: names[i], Agg: otherAgg})
			}

			comparisons = append(comparisons, cmp)
		}
		fmt.Println()
	}
	return comparisons, nil
}

func readResults(path string, skipFrames int) (*benchstats.Results, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return benchstats.ReadResults(f, skipFrames)
}

func printBaseline(name string, agg benchstats.Aggregate) {
	fmt.Printf("--- %s, Min/Mean/Median/Max\n", agg.Name)
	fmt.Printf("\t[%s] %.2f, %.2f, %.2f, %.2f\n", name, agg.Min, agg.Mean, agg.Median, agg.Max)
}

func printComparison(baseName, name string, base, other benchstats.Aggregate) {
	fmt.Printf("\t[%s] %.2f, %.2f, %.2f, %.2f (%+5.2f%%, %+5.2f%%, %+5.2f%%, %+5.2f%% vs %s)\n",
		name, other.Min, other.Mean, other.Median, other.Max,
		benchstats.PercentDiff(base.Min, other.Min),
		benchstats.PercentDiff(base.Mean, other.Mean),
		benchstats.PercentDiff(base.Median, other.Median),
		benchstats.PercentDiff(base.Max, other.Max),
		baseName)
}

func writeHTML(path string, comparisons []benchstats.Comparison) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Render(f, "Benchmark comparison", comparisons); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
