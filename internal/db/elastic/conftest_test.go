package elastic

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docbench/internal/domain"
)

// newTestClient spins up an HTTP stub for the node and connects a client
// to it. Every response carries the product header the driver validates.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := Connect(srv.URL, "documents_jsonb", zap.NewNop())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	return c
}

func testDocs(n int) []domain.Document {
	docs := make([]domain.Document, 0, n)
	for i := 0; i < n; i++ {
		docs = append(docs, domain.Document{
			Title:     "doc",
			Content:   "body",
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Tags:      []string{"rust"},
			Attributes: domain.Attributes{
				Att0: i,
				Att1: "value",
				Att2: domain.Nested{NestedKey: "com"},
				Att3: []string{"a", "b"},
			},
		})
	}
	return docs
}
