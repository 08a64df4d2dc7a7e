package postgres

// SQL queries for record storage

const (
	// querySaveRecord inserts a record keyed by (dataset, id).
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for duplicates.
	// RETURNING gives the ingest_seq that fixes input order for alignment.
	querySaveRecord = `
		INSERT INTO records (
			id, dataset, date_raw, occurred_at, ingested_at, data
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (dataset, id) DO NOTHING
		RETURNING ingest_seq
	`

	// queryListRecords fetches one dataset's records inside an occurred_at range.
	// Ordered by ingest_seq so the first stored record wins a cell.
	queryListRecords = `
		SELECT
			id, dataset, date_raw, occurred_at, ingested_at, data, ingest_seq
		FROM records
		WHERE dataset = $1
		  AND occurred_at >= $2
		  AND occurred_at < $3
		ORDER BY ingest_seq ASC
		LIMIT $4
	`

	// queryDeleteRecordsBefore prunes records older than the retention cutoff.
	// Records whose date never parsed fall back to their ingestion time.
	queryDeleteRecordsBefore = `
		DELETE FROM records
		WHERE occurred_at < $1
		   OR (occurred_at IS NULL AND ingested_at < $1)
	`

	querySchemaExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = 'records'
		)
	`
)
