package elastic

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/kailas-cloud/docbench/internal/domain"
)

func TestBulkLoad_Batching(t *testing.T) {
	var bodies []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents_jsonb/_bulk" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))
		_, _ = w.Write([]byte(`{"errors":false,"items":[]}`))
	})

	var progress []int
	stats, err := c.BulkLoad(context.Background(), testDocs(25), 10, func(sent int) {
		progress = append(progress, sent)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bodies) != 3 {
		t.Fatalf("expected 3 bulk requests, got %d", len(bodies))
	}
	// Two NDJSON lines per document: action metadata then the source.
	for i, want := range []int{20, 20, 10} {
		got := strings.Count(bodies[i], "\n")
		if got != want {
			t.Errorf("batch %d: expected %d NDJSON lines, got %d", i+1, want, got)
		}
		if !strings.Contains(bodies[i], `{"index":{}}`) {
			t.Errorf("batch %d: missing index action metadata", i+1)
		}
	}

	if stats.Indexed != 25 || stats.FailedItems != 0 || stats.PartialBatches != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(progress) != 3 || progress[0] != 10 || progress[1] != 20 || progress[2] != 25 {
		t.Fatalf("unexpected progress sequence: %v", progress)
	}
}

func TestBulkLoad_PartialBatchContinues(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			_, _ = w.Write([]byte(`{"errors":true,"items":[
				{"index":{"status":201}},
				{"index":{"status":400,"error":{"type":"mapper_parsing_exception","reason":"failed to parse"}}},
				{"index":{"status":400,"error":{"type":"mapper_parsing_exception","reason":"failed to parse"}}}
			]}`))
			return
		}
		_, _ = w.Write([]byte(`{"errors":false,"items":[]}`))
	})

	stats, err := c.BulkLoad(context.Background(), testDocs(9), 3, nil)
	if err != nil {
		t.Fatalf("partial batch must not abort the load: %v", err)
	}

	if calls != 3 {
		t.Fatalf("expected the load to continue through all 3 batches, got %d requests", calls)
	}
	if stats.PartialBatches != 1 {
		t.Fatalf("expected 1 partial batch, got %d", stats.PartialBatches)
	}
	if stats.FailedItems != 2 {
		t.Fatalf("expected 2 failed items, got %d", stats.FailedItems)
	}
	if stats.Indexed != 7 {
		t.Fatalf("expected 7 indexed documents, got %d", stats.Indexed)
	}
}

func TestBulkLoad_ServerErrorAborts(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"disk full"}`))
	})

	_, err := c.BulkLoad(context.Background(), testDocs(6), 3, nil)
	if !errors.Is(err, domain.ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected the load to abort after the first failed batch, got %d requests", calls)
	}
}

func TestBulkLoad_InvalidBatchSize(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an invalid batch size")
	})

	_, err := c.BulkLoad(context.Background(), testDocs(5), 0, nil)
	if !errors.Is(err, domain.ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
}

func TestBulkLoad_EmptyCorpus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty corpus")
	})

	stats, err := c.BulkLoad(context.Background(), nil, 100, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Indexed != 0 {
		t.Fatalf("expected zero indexed, got %d", stats.Indexed)
	}
}

func TestRefresh(t *testing.T) {
	refreshed := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/_refresh") {
			refreshed = true
		}
		_, _ = w.Write([]byte(`{}`))
	})

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !refreshed {
		t.Fatal("expected a refresh request")
	}
}

func TestRefresh_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"shard failure"}`))
	})

	err := c.Refresh(context.Background())
	if !errors.Is(err, domain.ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
}
