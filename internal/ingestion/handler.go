package ingestion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	v1 "github.com/aevon-lab/chartline/internal/api/v1"
	httperr "github.com/aevon-lab/chartline/internal/core/errors"
	"github.com/aevon-lab/chartline/internal/core/series"
	"github.com/aevon-lab/chartline/internal/core/storage"
	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed  = "Failed to read request body"
	msgInvalidJSON     = "Invalid JSON body"
	msgPersistFailed   = "Failed to persist record"
	msgDuplicateRecord = "Record already exists"
	msgListFailed      = "Failed to list records"
)

// ingestionError carries the structured HTTP error shape from a helper back to the handler.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// IngestHandler handles POST /v1/records
func (s *Service) IngestHandler(c *gin.Context) {
	var rec v1.Record
	payloadSize, err := s.bindBody(c, &rec)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := s.prepareRecord(&rec); err != nil {
		writeError(c, err)
		return
	}

	slog.Info("Received Record",
		"record_id", rec.ID,
		"dataset", rec.Dataset,
		"date", rec.Date,
		"payload_size", payloadSize)

	if err := s.persistRecord(c.Request.Context(), &rec); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "id": rec.ID})
}

// IngestBatchHandler handles POST /v1/records/batch
// The batch is all-or-nothing for validation; duplicates inside it are skipped.
func (s *Service) IngestBatchHandler(c *gin.Context) {
	var batch v1.BatchRequest
	payloadSize, err := s.bindBody(c, &batch)
	if err != nil {
		writeError(c, err)
		return
	}

	if len(batch.Records) == 0 {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "records must not be empty",
		})
		return
	}
	if len(batch.Records) > maxBatchRecords {
		writeError(c, &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpPayloadTooLargeError,
			message:    fmt.Sprintf("batch exceeds %d records", maxBatchRecords),
		})
		return
	}

	for i, rec := range batch.Records {
		if rec == nil {
			writeError(c, &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpInvalidJsonError,
				message:    fmt.Sprintf("records[%d] must not be null", i),
			})
			return
		}
		if err := s.prepareRecord(rec); err != nil {
			err.message = fmt.Sprintf("records[%d]: %s", i, err.message)
			writeError(c, err)
			return
		}
	}

	accepted, saveErr := s.store.SaveRecords(c.Request.Context(), batch.Records)
	if saveErr != nil {
		slog.Error("Failed to persist record batch", "error", saveErr, "records", len(batch.Records))
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		})
		return
	}

	slog.Info("Received Record batch",
		"records", len(batch.Records),
		"accepted", accepted,
		"payload_size", payloadSize)

	c.JSON(http.StatusAccepted, v1.BatchResponse{
		Accepted:   accepted,
		Duplicates: len(batch.Records) - accepted,
	})
}

// ListRecordsHandler handles GET /v1/records/:dataset
// Query parameters: start, end (ISO-8601 date or timestamp), limit
func (s *Service) ListRecordsHandler(c *gin.Context) {
	dataset := c.Param("dataset")

	now := s.nowFn().In(s.loc)
	_, end := series.WindowBounds(now, 0)
	start := end.AddDate(0, 0, -defaultListDays)
	limit := defaultListLimit

	if raw := c.Query("end"); raw != "" {
		t, ok := series.ParseDate(raw, s.loc)
		if !ok {
			writeError(c, invalidQuery("invalid end %q", raw))
			return
		}
		end = t
	}
	if raw := c.Query("start"); raw != "" {
		t, ok := series.ParseDate(raw, s.loc)
		if !ok {
			writeError(c, invalidQuery("invalid start %q", raw))
			return
		}
		start = t
	}
	if !end.After(start) {
		writeError(c, invalidQuery("end must be after start"))
		return
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxListLimit {
			writeError(c, invalidQuery("limit must be between 1 and %d", maxListLimit))
			return
		}
		limit = n
	}

	records, err := s.store.ListRecords(c.Request.Context(), dataset, start, end, limit)
	if err != nil {
		slog.Error("Failed to list records", "error", err, "dataset", dataset)
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgListFailed,
		})
		return
	}
	if records == nil {
		records = []*v1.Record{}
	}

	c.JSON(http.StatusOK, records)
}

// bindBody reads the request body under the size limit and binds it as JSON into dst.
// Returns the raw payload size for logging.
func (s *Service) bindBody(c *gin.Context, dst interface{}) (int, *ingestionError) {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpPayloadTooLargeError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	if err := c.ShouldBindJSON(dst); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
			details:    err.Error(),
		}
	}

	return len(bodyBytes), nil
}

// prepareRecord validates the envelope and fills the server-side fields.
// A date that does not parse is kept verbatim with a nil OccurredAt; such records are
// stored but never land in a chart bucket.
func (s *Service) prepareRecord(rec *v1.Record) *ingestionError {
	if err := rec.Validate(); err != nil {
		slog.Warn("Envelope validation failed", "error", err, "record_id", rec.ID)
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    err.Error(),
		}
	}

	if rec.ID == "" {
		rec.ID = s.newID()
	}
	rec.IngestedAt = s.nowFn().UTC()
	rec.IngestSeq = 0

	if t, ok := series.ParseDate(rec.Date, s.loc); ok {
		rec.OccurredAt = &t
	} else {
		rec.OccurredAt = nil
		slog.Warn("Record date is not ISO-8601, it will never be charted",
			"record_id", rec.ID,
			"dataset", rec.Dataset,
			"date", rec.Date)
	}
	return nil
}

// persistRecord saves a single record to the backing store.
func (s *Service) persistRecord(ctx context.Context, rec *v1.Record) *ingestionError {
	if err := s.store.SaveRecord(ctx, rec); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			slog.Info("Duplicate record rejected", "record_id", rec.ID, "dataset", rec.Dataset)
			return &ingestionError{
				statusCode: http.StatusConflict,
				errorType:  httperr.HttpDuplicateRecordError,
				message:    msgDuplicateRecord,
			}
		}

		slog.Error("Failed to persist record", "error", err, "record_id", rec.ID)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}

	return nil
}

func invalidQuery(format string, args ...interface{}) *ingestionError {
	return &ingestionError{
		statusCode: http.StatusBadRequest,
		errorType:  httperr.HttpInvalidQueryError,
		message:    fmt.Sprintf(format, args...),
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
