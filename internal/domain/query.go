package domain

import "time"

// Intent identifies a benchmark query by the predicate shape it
// exercises. Dispatch is by intent, never by parsing the description.
type Intent int

const (
	// IntentTagContains tests array containment on the tags field.
	IntentTagContains Intent = iota
	// IntentAttributeExists tests existence of a mandatory attribute key.
	IntentAttributeExists
	// IntentNestedEquals tests equality on a nested attribute field.
	IntentNestedEquals
	// IntentNumericGreater tests a numeric range comparison.
	IntentNumericGreater
	// IntentOptionalExists tests existence of a sparse optional key.
	IntentOptionalExists
	// IntentAbsentTag tests a known-absent value; both engines must
	// return zero rows.
	IntentAbsentTag
)

func (i Intent) String() string {
	switch i {
	case IntentTagContains:
		return "tag_contains"
	case IntentAttributeExists:
		return "attribute_exists"
	case IntentNestedEquals:
		return "nested_equals"
	case IntentNumericGreater:
		return "numeric_greater"
	case IntentOptionalExists:
		return "optional_exists"
	case IntentAbsentTag:
		return "absent_tag"
	default:
		return "unknown"
	}
}

// BenchmarkQuery is one abstract query intent carrying both engines'
// native payloads. The query set is defined once per run and read-only
// during benchmarking.
type BenchmarkQuery struct {
	Intent      Intent
	Description string
	// PGParam is the parameter bound to the prepared statement for this
	// intent: JSON text for containment, a key name for existence, a
	// scalar for comparison.
	PGParam string
	// ESQuery is the query clause of the search body; the runner adds
	// the _source filter and size cap around it.
	ESQuery map[string]any
}

// QueryResult is one measured query: result count and elapsed wall time
// from issue to full result materialization. Skipped results come from
// failed queries and are excluded from aggregates.
type QueryResult struct {
	Description string
	Rows        int
	Elapsed     time.Duration
	Skipped     bool
}

// EngineReport accumulates per-query results for one engine.
type EngineReport struct {
	Engine  string
	Results []QueryResult
}

// Add appends a measured result.
func (r *EngineReport) Add(res QueryResult) {
	r.Results = append(r.Results, res)
}

// Attempted returns the number of queries that completed (not skipped).
func (r *EngineReport) Attempted() int {
	n := 0
	for _, res := range r.Results {
		if !res.Skipped {
			n++
		}
	}
	return n
}

// Skipped returns the number of queries excluded from aggregates.
func (r *EngineReport) Skipped() int {
	return len(r.Results) - r.Attempted()
}

// TotalRows sums result counts across attempted queries.
func (r *EngineReport) TotalRows() int {
	total := 0
	for _, res := range r.Results {
		if !res.Skipped {
			total += res.Rows
		}
	}
	return total
}

// AverageLatency is sum(elapsed)/attempted. Zero when nothing completed.
func (r *EngineReport) AverageLatency() time.Duration {
	attempted := r.Attempted()
	if attempted == 0 {
		return 0
	}
	var sum time.Duration
	for _, res := range r.Results {
		if !res.Skipped {
			sum += res.Elapsed
		}
	}
	return sum / time.Duration(attempted)
}
