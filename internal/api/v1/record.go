package v1

import (
	"fmt"
	"time"
)

// Record is one stored data point of a dataset.
// The envelope (ID, Dataset, Date) is separated from the free-form Data that holds
// the numeric props and split dimensions a chart reads.
type Record struct {
	// ID identifies the record within its dataset. Ingestion assigns a UUID when omitted.
	ID string `json:"id"`

	// Dataset groups records that are charted together (e.g. "sales").
	Dataset string `json:"dataset"`

	// Date is the client-supplied ISO-8601 date or date-time, kept verbatim.
	Date string `json:"date"`

	// OccurredAt is Date parsed in the server's chart location.
	// Nil when Date could not be parsed; such records never land in a day bucket.
	OccurredAt *time.Time `json:"occurred_at,omitempty"`

	// IngestedAt is set by the ingestion service.
	IngestedAt time.Time `json:"ingested_at"`

	// IngestSeq is assigned by the database (BIGSERIAL) and fixes the original input
	// order that first-match alignment depends on. Not exposed in the public API.
	IngestSeq int64 `json:"-"`

	Data map[string]interface{} `json:"data"`
}

// Validate ensures the record has the envelope fields alignment needs.
func (r *Record) Validate() error {
	if r.Dataset == "" {
		return fmt.Errorf("dataset is required")
	}

	if r.Date == "" {
		return fmt.Errorf("date is required")
	}

	return nil
}

// BatchRequest is the body of POST /v1/records/batch.
type BatchRequest struct {
	Records []*Record `json:"records"`
}

// BatchResponse reports how many records of a batch were stored.
type BatchResponse struct {
	Accepted   int `json:"accepted"`
	Duplicates int `json:"duplicates"`
}
