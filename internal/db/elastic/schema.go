package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docbench/internal/domain"
)

// indexMapping types the known fields explicitly: full-text title and
// content, date created_at, keyword tags for exact matching, and the
// mandatory attributes. Sparse att_opt_* fields are left to dynamic
// mapping.
func indexMapping() map[string]any {
	return map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"title":      map[string]any{"type": "text"},
				"content":    map[string]any{"type": "text"},
				"created_at": map[string]any{"type": "date"},
				"tags":       map[string]any{"type": "keyword"},
				"attributes": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"att0": map[string]any{"type": "integer"},
						"att1": map[string]any{
							"type": "text",
							"fields": map[string]any{
								"keyword": map[string]any{
									"type":         "keyword",
									"ignore_above": 256,
								},
							},
						},
						"att2": map[string]any{"type": "object"},
						"att3": map[string]any{"type": "keyword"},
					},
				},
			},
		},
	}
}

// EnsureIndex checks index existence and creates it with the explicit
// mapping when absent. An existing index is a no-op; a creation failure
// is fatal to the run.
func (c *Client) EnsureIndex(ctx context.Context) error {
	exists, err := c.es.Indices.Exists(
		[]string{c.index},
		c.es.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: index exists check: %v", domain.ErrConnectivity, err)
	}
	defer exists.Body.Close()

	switch exists.StatusCode {
	case http.StatusOK:
		c.log.Info("elasticsearch index already exists", zap.String("index", c.index))
		return nil
	case http.StatusNotFound:
		// fall through to create
	default:
		return fmt.Errorf("%w: index exists check: %s", domain.ErrSchema, exists.Status())
	}

	body, err := json.Marshal(indexMapping())
	if err != nil {
		return fmt.Errorf("%w: encode mapping: %v", domain.ErrSchema, err)
	}

	res, err := c.es.Indices.Create(
		c.index,
		c.es.Indices.Create.WithBody(bytes.NewReader(body)),
		c.es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: create index: %v", domain.ErrConnectivity, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: create index %s: %s: %s",
			domain.ErrSchema, c.index, res.Status(), readBody(res))
	}

	c.log.Info("elasticsearch index created", zap.String("index", c.index))
	return nil
}
