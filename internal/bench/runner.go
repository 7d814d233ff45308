package bench

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docbench/internal/domain"
)

// RelationalEngine is the consumer interface for the relational side:
// execute the prepared form of one intent and materialize all titles.
type RelationalEngine interface {
	RunQuery(ctx context.Context, q domain.BenchmarkQuery) ([]string, error)
}

// SearchEngine is the consumer interface for the search side: post one
// query-DSL clause capped at size hits.
type SearchEngine interface {
	Search(ctx context.Context, query map[string]any, size int) (int, []string, error)
}

// Runner executes the fixed query set against each engine in order,
// timing each query from issue to full result materialization. A failed
// query is logged and skipped; skipped queries are excluded from the
// aggregate denominators. Engines are passed in explicitly, never held
// as globals.
type Runner struct {
	queries []domain.BenchmarkQuery
	size    int
	log     *zap.Logger
}

// NewRunner creates a runner over a fixed query set. size caps search
// results per query.
func NewRunner(queries []domain.BenchmarkQuery, size int, log *zap.Logger) *Runner {
	return &Runner{queries: queries, size: size, log: log}
}

// RunRelational benchmarks every query against the relational engine.
func (r *Runner) RunRelational(ctx context.Context, eng RelationalEngine, engine string) domain.EngineReport {
	report := domain.EngineReport{Engine: engine}
	for _, q := range r.queries {
		start := time.Now()
		titles, err := eng.RunQuery(ctx, q)
		elapsed := time.Since(start)
		if err != nil {
			r.log.Warn("query skipped",
				zap.String("engine", engine),
				zap.String("query", q.Description),
				zap.Error(err),
			)
			report.Add(domain.QueryResult{Description: q.Description, Skipped: true})
			continue
		}
		report.Add(domain.QueryResult{
			Description: q.Description,
			Rows:        len(titles),
			Elapsed:     elapsed,
		})
	}
	return report
}

// RunSearch benchmarks every query against the search engine.
func (r *Runner) RunSearch(ctx context.Context, eng SearchEngine, engine string) domain.EngineReport {
	report := domain.EngineReport{Engine: engine}
	for _, q := range r.queries {
		start := time.Now()
		hits, _, err := eng.Search(ctx, q.ESQuery, r.size)
		elapsed := time.Since(start)
		if err != nil {
			r.log.Warn("query skipped",
				zap.String("engine", engine),
				zap.String("query", q.Description),
				zap.Error(err),
			)
			report.Add(domain.QueryResult{Description: q.Description, Skipped: true})
			continue
		}
		report.Add(domain.QueryResult{
			Description: q.Description,
			Rows:        hits,
			Elapsed:     elapsed,
		})
	}
	return report
}
