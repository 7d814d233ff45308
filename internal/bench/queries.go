// Package bench holds the fixed query set, the dual-engine benchmark
// runner and the tabular report writer.
package bench

import "github.com/kailas-cloud/docbench/internal/domain"

// DefaultQueries is the canonical six-intent battery. Each intent
// exercises a distinct predicate shape; the last one is a known-absent
// value validating the no-match path on both engines.
func DefaultQueries() []domain.BenchmarkQuery {
	return []domain.BenchmarkQuery{
		{
			Intent:      domain.IntentTagContains,
			Description: "tags contains rust",
			PGParam:     `["rust"]`,
			ESQuery:     map[string]any{"term": map[string]any{"tags": "rust"}},
		},
		{
			Intent:      domain.IntentAttributeExists,
			Description: "attributes.att1 exists",
			PGParam:     "att1",
			ESQuery:     map[string]any{"exists": map[string]any{"field": "attributes.att1"}},
		},
		{
			Intent:      domain.IntentNestedEquals,
			Description: "attributes.att2.nested_key = com",
			PGParam:     "com",
			ESQuery:     map[string]any{"term": map[string]any{"attributes.att2.nested_key": "com"}},
		},
		{
			Intent:      domain.IntentNumericGreater,
			Description: "attributes.att0 > 500",
			PGParam:     "500",
			ESQuery:     map[string]any{"range": map[string]any{"attributes.att0": map[string]any{"gt": 500}}},
		},
		{
			Intent:      domain.IntentOptionalExists,
			Description: "attributes.att_opt_1 exists",
			PGParam:     "att_opt_1",
			ESQuery:     map[string]any{"exists": map[string]any{"field": "attributes.att_opt_1"}},
		},
		{
			Intent:      domain.IntentAbsentTag,
			Description: "tags contains nonexistent",
			PGParam:     `["nonexistent"]`,
			ESQuery:     map[string]any{"term": map[string]any{"tags": "nonexistent"}},
		},
	}
}
