package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig signals missing or invalid connection settings. Fatal
	// before any I/O.
	ErrConfig = errors.New("invalid configuration")
	// ErrConnectivity signals an unreachable engine. Fatal, no retry.
	ErrConnectivity = errors.New("engine unreachable")
	// ErrSchema signals a DDL or mapping-creation failure. Fatal.
	ErrSchema = errors.New("schema provisioning failed")
	// ErrProtocol signals a malformed payload or a rejected bulk
	// request. Fatal.
	ErrProtocol = errors.New("protocol error")
	// ErrAbortedStream signals a COPY stream abandoned after a write
	// failure; the stream is never finalized.
	ErrAbortedStream = errors.New("copy stream aborted")
	// ErrPartialBatch signals a bulk batch that succeeded at the HTTP
	// level but reported per-item failures. Logged, load continues.
	ErrPartialBatch = errors.New("bulk batch partially failed")
	// ErrTranslation signals a malformed parameter for a query intent.
	// Fatal for that intent only.
	ErrTranslation = errors.New("query translation failed")
	// ErrQueryFailed signals a single benchmark query failure. Logged,
	// the query is skipped and excluded from aggregates.
	ErrQueryFailed = errors.New("query failed")
)

// AbortedStreamError wraps ErrAbortedStream with the number of rows fed
// into the stream before it was abandoned.
type AbortedStreamError struct {
	Rows  int64
	Cause error
}

func (e *AbortedStreamError) Error() string {
	return fmt.Sprintf("%s after %d rows: %v", ErrAbortedStream.Error(), e.Rows, e.Cause)
}

func (e *AbortedStreamError) Unwrap() error { return ErrAbortedStream }

// PartialBatchError wraps ErrPartialBatch with per-item failure counts
// and a sample reason for diagnostics.
type PartialBatchError struct {
	Batch  int
	Failed int
	Reason string
}

func (e *PartialBatchError) Error() string {
	return fmt.Sprintf("%s: batch %d, %d items failed: %s",
		ErrPartialBatch.Error(), e.Batch, e.Failed, e.Reason)
}

func (e *PartialBatchError) Unwrap() error { return ErrPartialBatch }
