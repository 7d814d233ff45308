package bench

import (
	"fmt"
	"io"
	"strings"

	"github.com/kailas-cloud/docbench/internal/domain"
)

// WriteReport renders one engine's results as a fixed-width table with a
// single aggregate line. Skipped queries are shown but excluded from the
// aggregate.
func WriteReport(w io.Writer, report domain.EngineReport) {
	fmt.Fprintf(w, "\n=== %s ===\n", report.Engine)
	fmt.Fprintf(w, "%-34s | %-8s | %-14s\n", "Query", "Rows", "Latency (ms)")
	fmt.Fprintln(w, strings.Repeat("-", 62))

	for _, res := range report.Results {
		if res.Skipped {
			fmt.Fprintf(w, "%-34s | %-8s | %-14s\n", res.Description, "-", "skipped")
			continue
		}
		fmt.Fprintf(w, "%-34s | %-8d | %-14.4f\n",
			res.Description, res.Rows, float64(res.Elapsed.Microseconds())/1000.0)
	}

	fmt.Fprintln(w, strings.Repeat("-", 62))
	fmt.Fprintf(w, "%s average latency: %.4fms (%d queries, %d skipped, %d total rows)\n",
		report.Engine,
		float64(report.AverageLatency().Microseconds())/1000.0,
		report.Attempted(),
		report.Skipped(),
		report.TotalRows(),
	)
}
