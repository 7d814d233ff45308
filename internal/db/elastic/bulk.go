package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docbench/internal/domain"
)

// LoadStats summarizes a bulk load across all batches.
type LoadStats struct {
	Indexed        int
	FailedItems    int
	PartialBatches int
}

// bulkResponse is the subset of the _bulk response the loader inspects.
type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// BulkLoad sends the corpus in fixed-size batches, one _bulk request per
// batch. A non-2xx response aborts the whole load with the response body
// for diagnosis. A 2xx response reporting "errors": true is a non-fatal
// partial failure: it is logged and counted, and the load continues.
// An empty corpus issues no network call. onBatch is informative
// progress only.
func (c *Client) BulkLoad(ctx context.Context, docs []domain.Document, batchSize int, onBatch func(sent int)) (LoadStats, error) {
	if batchSize <= 0 {
		return LoadStats{}, fmt.Errorf("%w: bulk batch size %d", domain.ErrProtocol, batchSize)
	}

	var stats LoadStats
	batchNum := 0
	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batchNum++

		partial, err := c.sendBatch(ctx, batchNum, docs[start:end])
		if err != nil {
			return stats, err
		}
		if partial != nil {
			stats.PartialBatches++
			stats.FailedItems += partial.Failed
			stats.Indexed += (end - start) - partial.Failed
			c.log.Warn("bulk batch completed with item errors",
				zap.Int("batch", partial.Batch),
				zap.Int("failed_items", partial.Failed),
				zap.String("sample_reason", partial.Reason),
			)
		} else {
			stats.Indexed += end - start
		}

		if onBatch != nil {
			onBatch(end)
		}
	}
	return stats, nil
}

// sendBatch builds one NDJSON body of index actions and fully consumes
// the response, including the per-item failure flag, before the batch is
// considered complete.
func (c *Client) sendBatch(ctx context.Context, batchNum int, docs []domain.Document) (*domain.PartialBatchError, error) {
	var buf bytes.Buffer
	meta := []byte("{\"index\":{}}\n")
	for _, doc := range docs {
		data, err := doc.Encode()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrProtocol, err)
		}
		buf.Write(meta)
		buf.Write(data)
		buf.WriteByte('\n')
	}

	res, err := c.es.Bulk(
		bytes.NewReader(buf.Bytes()),
		c.es.Bulk.WithIndex(c.index),
		c.es.Bulk.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: bulk batch %d: %v", domain.ErrConnectivity, batchNum, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: bulk batch %d: %s: %s",
			domain.ErrProtocol, batchNum, res.Status(), readBody(res))
	}

	var body bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode bulk response: %v", domain.ErrProtocol, err)
	}
	if !body.Errors {
		return nil, nil
	}

	failed := 0
	reason := ""
	for _, item := range body.Items {
		for _, op := range item {
			if op.Status >= 300 {
				failed++
				if reason == "" && op.Error != nil {
					reason = op.Error.Type + ": " + op.Error.Reason
				}
			}
		}
	}
	if reason == "" {
		reason = "unreported item error"
	}
	return &domain.PartialBatchError{Batch: batchNum, Failed: failed, Reason: reason}, nil
}

// Refresh forces just-indexed documents to become visible to searches.
// Without this barrier the query benchmarks could under-count results.
func (c *Client) Refresh(ctx context.Context) error {
	res, err := c.es.Indices.Refresh(
		c.es.Indices.Refresh.WithIndex(c.index),
		c.es.Indices.Refresh.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: refresh: %v", domain.ErrConnectivity, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("%w: refresh %s: %s", domain.ErrProtocol, c.index, res.Status())
	}
	return nil
}
