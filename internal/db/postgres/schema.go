package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docbench/internal/domain"
)

// EnsureSchema idempotently creates the document table and its indexes:
// a general GIN index, a jsonb_path_ops GIN index for containment, and
// targeted GIN indexes over the tags and attributes sub-paths. Reruns
// are no-ops. Any failure is fatal to the run.
func (c *Client) EnsureSchema(ctx context.Context) error {
	tbl := pgx.Identifier{c.table}.Sanitize()
	ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %[1]s (
    id BIGSERIAL PRIMARY KEY,
    data JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS documents_data_gin_idx ON %[1]s USING GIN (data);
CREATE INDEX IF NOT EXISTS documents_data_gin_path_idx ON %[1]s USING GIN (data jsonb_path_ops);
CREATE INDEX IF NOT EXISTS documents_tags_gin_idx ON %[1]s USING GIN ((data -> 'tags'));
CREATE INDEX IF NOT EXISTS documents_attributes_gin_idx ON %[1]s USING GIN ((data -> 'attributes'));
`, tbl)

	// No arguments, so pgx executes the batch over the simple protocol.
	if _, err := c.conn.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("%w: postgres DDL: %v", domain.ErrSchema, err)
	}

	c.log.Info("postgres schema ready", zap.String("table", c.table))
	return nil
}
