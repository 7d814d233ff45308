package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/docbench/internal/domain"
)

// searchResponse is the subset of the search response the runner needs.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source struct {
				Title string `json:"title"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search posts one query-DSL body restricted to the title field and
// capped at size hits, and returns the hit count with the titles. Any
// transport failure or non-2xx status is an ErrQueryFailed the runner
// may skip.
func (c *Client) Search(ctx context.Context, query map[string]any, size int) (int, []string, error) {
	body := map[string]any{
		"_source": []string{"title"},
		"query":   query,
		"size":    size,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: encode search body: %v", domain.ErrTranslation, err)
	}

	res, err := c.es.Search(
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(data)),
		c.es.Search.WithContext(ctx),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: search: %v", domain.ErrQueryFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("%w: search: %s: %s",
			domain.ErrQueryFailed, res.Status(), readBody(res))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, nil, fmt.Errorf("%w: decode search response: %v", domain.ErrQueryFailed, err)
	}

	titles := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		titles = append(titles, h.Source.Title)
	}
	return len(titles), titles, nil
}
