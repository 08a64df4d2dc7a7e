package postgres

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"

	v1 "github.com/aevon-lab/chartline/internal/api/v1"
)

// marshalData encodes a record payload. A nil payload is stored as an empty object.
func marshalData(record *v1.Record) ([]byte, error) {
	if record.Data == nil {
		return []byte(`{}`), nil
	}
	dataJSON, err := json.Marshal(record.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal data: %w", err)
	}
	return dataJSON, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRecordRow scans a database row into a Record.
// Numbers in the payload are kept as json.Number so cells keep their exact value.
func scanRecordRow(row scanner) (*v1.Record, error) {
	var rec v1.Record
	var occurredAt sql.NullTime
	var dataJSON []byte

	err := row.Scan(
		&rec.ID,
		&rec.Dataset,
		&rec.Date,
		&occurredAt,
		&rec.IngestedAt,
		&dataJSON,
		&rec.IngestSeq,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan record row: %w", err)
	}
	if occurredAt.Valid {
		t := occurredAt.Time
		rec.OccurredAt = &t
	}

	dec := json.NewDecoder(bytes.NewReader(dataJSON))
	dec.UseNumber()
	if err := dec.Decode(&rec.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}

	return &rec, nil
}
