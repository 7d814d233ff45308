// Package postgres provides the relational engine client: schema DDL,
// the binary COPY bulk loader and the prepared benchmark queries, all on
// one long-lived connection.
package postgres

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docbench/internal/domain"
)

// Client owns a single pgx connection for the whole run. The connection
// is not safe for concurrent use; all phases are sequential, so the
// health monitor runs on its own dedicated connection.
type Client struct {
	conn    *pgx.Conn
	url     string
	table   string
	log     *zap.Logger
	healthy atomic.Bool

	// copyFrom is the COPY entry point, split out so loader tests can
	// fail the stream mid-corpus.
	copyFrom func(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error)
}

// Connect opens the main connection.
func Connect(ctx context.Context, url, table string, log *zap.Logger) (*Client, error) {
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: postgres connect: %v", domain.ErrConnectivity, err)
	}
	c := &Client{conn: conn, url: url, table: table, log: log}
	c.copyFrom = conn.CopyFrom
	c.healthy.Store(true)
	return c, nil
}

// StartMonitor supervises connection health on a dedicated connection:
// it pings every interval, flips the observable health flag and logs
// failures without ever escalating them. It stops when ctx is done.
func (c *Client) StartMonitor(ctx context.Context, interval time.Duration) {
	go func() {
		monConn, err := pgx.Connect(ctx, c.url)
		if err != nil {
			c.log.Warn("postgres monitor connection failed", zap.Error(err))
			return
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = monConn.Close(closeCtx)
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := monConn.Ping(ctx); err != nil {
					if ctx.Err() != nil {
						return
					}
					c.healthy.Store(false)
					c.log.Warn("postgres connection unhealthy", zap.Error(err))
					continue
				}
				c.healthy.Store(true)
			}
		}
	}()
}

// Healthy reports the last observed connection state.
func (c *Client) Healthy() bool {
	return c.healthy.Load()
}

// Close releases the main connection.
func (c *Client) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}
