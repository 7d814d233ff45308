package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docbench/internal/domain"
)

// corpusSource feeds documents into a binary COPY stream, one row per
// document in corpus order. Each document is serialized exactly once,
// inside Values.
type corpusSource struct {
	docs  []domain.Document
	idx   int
	err   error
	onRow func(written int)
}

func newCorpusSource(docs []domain.Document, onRow func(int)) *corpusSource {
	return &corpusSource{docs: docs, idx: -1, onRow: onRow}
}

func (s *corpusSource) Next() bool {
	s.idx++
	return s.err == nil && s.idx < len(s.docs)
}

func (s *corpusSource) Values() ([]any, error) {
	data, err := json.Marshal(s.docs[s.idx])
	if err != nil {
		s.err = err
		return nil, err
	}
	if s.onRow != nil {
		s.onRow(s.idx + 1)
	}
	// The column is JSONB; pgx passes the raw JSON bytes through.
	return []any{data}, nil
}

func (s *corpusSource) Err() error { return s.err }

// CopyDocuments streams the corpus through a single
// COPY <table> (data) FROM STDIN (FORMAT BINARY) channel. The stream is
// finalized only after the last row; any write error abandons it (the
// driver never sends CopyDone on failure) and surfaces a fatal
// AbortedStreamError. onRow is informative progress only.
func (c *Client) CopyDocuments(ctx context.Context, docs []domain.Document, onRow func(int)) (int64, error) {
	src := newCorpusSource(docs, onRow)
	copied, err := c.copyFrom(ctx, pgx.Identifier{c.table}, []string{"data"}, src)
	if err != nil {
		return copied, &domain.AbortedStreamError{Rows: int64(src.idx + 1), Cause: err}
	}

	c.log.Info("postgres copy finished",
		zap.Int64("rows", copied),
		zap.String("table", c.table),
	)
	return copied, nil
}
