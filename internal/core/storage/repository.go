package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/aevon-lab/chartline/internal/api/v1"
)

// ErrDuplicate is returned when a record with the same (dataset, id) already exists.
var ErrDuplicate = errors.New("record already exists")

// RecordStore persists records and serves them back for chart rendering.
type RecordStore interface {
	// SaveRecord stores one record and populates its IngestSeq.
	SaveRecord(ctx context.Context, record *v1.Record) error

	// SaveRecords stores a batch in one transaction. Duplicates are skipped rather than
	// failing the batch; the number of newly stored records is returned.
	SaveRecords(ctx context.Context, records []*v1.Record) (int, error)

	// ListRecords returns the records of a dataset whose OccurredAt falls in [start, end),
	// in ingestion order. Records with an unparseable date are never returned.
	ListRecords(ctx context.Context, dataset string, start, end time.Time, limit int) ([]*v1.Record, error)

	// DeleteRecordsBefore removes records that occurred before cutoff (or, for records
	// without a parsed date, were ingested before it) and reports how many were removed.
	DeleteRecordsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
