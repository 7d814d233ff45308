// Package elastic provides the search engine client: index provisioning
// with an explicit mapping, the batched bulk loader with its refresh
// barrier, and the benchmark search call.
package elastic

import (
	"context"
	"fmt"
	"io"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docbench/internal/domain"
)

// Client wraps a single-node Elasticsearch connection for the run.
type Client struct {
	es    *elasticsearch.Client
	index string
	log   *zap.Logger
}

// Connect builds the client for one node URL.
func Connect(url, index string, log *zap.Logger) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: elasticsearch client: %v", domain.ErrConfig, err)
	}
	return &Client{es: es, index: index, log: log}, nil
}

// Ping verifies the node is reachable before any load is attempted.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: elasticsearch ping: %v", domain.ErrConnectivity, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("%w: elasticsearch ping: %s", domain.ErrConnectivity, res.Status())
	}
	return nil
}

// readBody drains a response body for diagnostics.
func readBody(res *esapi.Response) string {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Sprintf("<unreadable body: %v>", err)
	}
	return string(body)
}
