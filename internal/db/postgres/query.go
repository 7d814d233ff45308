package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/kailas-cloud/docbench/internal/domain"
)

// Prepared statement names, one per predicate shape. Tag containment and
// the known-absent tag share a statement, as do the two key-existence
// intents.
const (
	stmtTagContains    = "bench_tag_contains"
	stmtAttrExists     = "bench_attr_exists"
	stmtNestedEquals   = "bench_nested_equals"
	stmtNumericGreater = "bench_numeric_greater"
)

// PrepareQueries prepares the four benchmark statement shapes once,
// keyed by intent. limit caps result materialization per query.
func (c *Client) PrepareQueries(ctx context.Context, limit int) error {
	tbl := pgx.Identifier{c.table}.Sanitize()
	stmts := map[string]string{
		stmtTagContains: fmt.Sprintf(
			"SELECT data ->> 'title' FROM %s WHERE data -> 'tags' @> $1::jsonb LIMIT %d", tbl, limit),
		stmtAttrExists: fmt.Sprintf(
			"SELECT data ->> 'title' FROM %s WHERE data -> 'attributes' ? $1 LIMIT %d", tbl, limit),
		stmtNestedEquals: fmt.Sprintf(
			"SELECT data ->> 'title' FROM %s WHERE data -> 'attributes' -> 'att2' ->> 'nested_key' = $1 LIMIT %d", tbl, limit),
		stmtNumericGreater: fmt.Sprintf(
			"SELECT data ->> 'title' FROM %s WHERE (data -> 'attributes' ->> 'att0')::numeric > $1 LIMIT %d", tbl, limit),
	}

	for name, sql := range stmts {
		if _, err := c.conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %s: %w", name, err)
		}
	}
	return nil
}

// RunQuery executes the prepared statement for the query's intent and
// materializes the full result set of titles.
func (c *Client) RunQuery(ctx context.Context, q domain.BenchmarkQuery) ([]string, error) {
	arg, err := translateParam(q)
	if err != nil {
		return nil, err
	}

	rows, err := c.conn.Query(ctx, statementFor(q.Intent), arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrQueryFailed, q.Description, err)
	}
	titles, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrQueryFailed, q.Description, err)
	}
	return titles, nil
}

func statementFor(intent domain.Intent) string {
	switch intent {
	case domain.IntentTagContains, domain.IntentAbsentTag:
		return stmtTagContains
	case domain.IntentAttributeExists, domain.IntentOptionalExists:
		return stmtAttrExists
	case domain.IntentNestedEquals:
		return stmtNestedEquals
	case domain.IntentNumericGreater:
		return stmtNumericGreater
	default:
		return stmtTagContains
	}
}

// translateParam maps the abstract parameter to the prepared statement's
// bound value: JSON text for containment, a key name for existence, a
// numeric threshold for comparison.
func translateParam(q domain.BenchmarkQuery) (any, error) {
	switch q.Intent {
	case domain.IntentNumericGreater:
		n, err := strconv.ParseFloat(q.PGParam, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: non-numeric threshold %q",
				domain.ErrTranslation, q.Description, q.PGParam)
		}
		return n, nil
	default:
		return q.PGParam, nil
	}
}
