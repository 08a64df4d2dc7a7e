package ingestion

import (
	"time"

	"github.com/aevon-lab/chartline/internal/core/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultListLimit = 1000
	maxListLimit     = 10000
	defaultListDays  = 30
	maxBatchRecords  = 5000
)

type Service struct {
	store            storage.RecordStore
	loc              *time.Location
	maxBodySizeBytes int
	nowFn            func() time.Time
	newID            func() string
}

// NewService creates the records API. loc decides how record dates without an offset
// are read; nil means host local time.
func NewService(repo storage.RecordStore, loc *time.Location, maxBodySizeMB int) *Service {
	if repo == nil {
		panic("ingestion: store must not be nil")
	}
	if loc == nil {
		loc = time.Local
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            repo,
		loc:              loc,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		nowFn:            time.Now,
		newID:            uuid.NewString,
	}
}

// RegisterRoutes registers the records API routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/records", s.IngestHandler)
	r.POST("/v1/records/batch", s.IngestBatchHandler)
	r.GET("/v1/records/:dataset", s.ListRecordsHandler)
}
