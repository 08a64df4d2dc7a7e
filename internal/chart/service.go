package chart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	v1 "github.com/aevon-lab/chartline/internal/api/v1"
	"github.com/aevon-lab/chartline/internal/core/chartdef"
	"github.com/aevon-lab/chartline/internal/core/series"
	"github.com/aevon-lab/chartline/internal/core/storage"
	"github.com/aevon-lab/chartline/internal/render"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const dashboardConcurrency = 4

var (
	// ErrInvalidQuery marks request validation errors that should return HTTP 400.
	ErrInvalidQuery = errors.New("invalid chart query")

	// ErrUnknownChart is returned for chart names with no definition.
	ErrUnknownChart = errors.New("unknown chart")
)

// Options tune a Service. Zero values fall back to package defaults.
type Options struct {
	Location      *time.Location
	Palette       []string
	DefaultRange  int
	MaxRange      int
	DefaultHeight int
	MaxRecords    int
}

// Service renders charts from stored records.
type Service struct {
	store       storage.RecordStore
	definitions chartdef.Repository
	loc         *time.Location
	palette     render.Palette
	formatter   render.Formatter
	opts        Options
	loads       singleflight.Group
	nowFn       func() time.Time
}

// NewService creates a chart service. definitions may be nil when only ad-hoc charts are served.
func NewService(store storage.RecordStore, definitions chartdef.Repository, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.DefaultRange <= 0 {
		opts.DefaultRange = 30
	}
	if opts.MaxRange <= 0 {
		opts.MaxRange = 366
	}
	if opts.DefaultHeight <= 0 {
		opts.DefaultHeight = 300
	}
	if opts.MaxRecords <= 0 {
		opts.MaxRecords = 100000
	}
	if definitions == nil {
		definitions = chartdef.NewStaticRepository(nil)
	}

	return &Service{
		store:       store,
		definitions: definitions,
		loc:         opts.Location,
		palette:     render.NewPalette(opts.Palette...),
		formatter:   render.FormatLargeNumber,
		opts:        opts,
		nowFn:       time.Now,
	}
}

// Render loads the dataset's records for the trailing window and aligns them into a chart.
// Only records dated inside the window are loaded, so split columns come from values
// seen in the window; a split value that only appears in older records has no column.
func (s *Service) Render(ctx context.Context, req ChartRequest) (*ChartResponse, error) {
	req, cfg, err := s.normalizeAndValidate(req)
	if err != nil {
		return nil, err
	}

	now := s.nowFn().In(s.loc)
	start, end := series.WindowBounds(now, cfg.Range)

	records, err := s.loadRecords(ctx, req.Dataset, start, end)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	truncated := len(records) >= s.opts.MaxRecords
	if truncated {
		slog.Warn("[Charts] Record load hit max_records, chart may be incomplete",
			"dataset", req.Dataset,
			"max_records", s.opts.MaxRecords,
			"start", start,
			"end", end)
	}

	table, err := series.AlignAt(now, toSeriesRecords(records), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	c := render.Build(render.Spec{Title: req.Title, Height: req.Height}, table, s.palette, s.formatter)

	slog.Debug("[Charts] Rendered chart",
		"dataset", req.Dataset,
		"records", len(records),
		"columns", len(table.Columns),
		"rows", len(table.Rows))

	return &ChartResponse{
		Dataset:     req.Dataset,
		Range:       cfg.Range,
		Start:       series.DayKey(start),
		End:         series.DayKey(now),
		RecordCount: len(records),
		Truncated:   truncated,
		Chart:       c,
	}, nil
}

// RenderDefinition renders a configured chart by name.
func (s *Service) RenderDefinition(ctx context.Context, name string) (*ChartResponse, error) {
	def, err := s.definitions.Get(ctx, name)
	if errors.Is(err, chartdef.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}
	if err != nil {
		return nil, err
	}
	return s.renderDefinition(ctx, *def)
}

func (s *Service) renderDefinition(ctx context.Context, def chartdef.Definition) (*ChartResponse, error) {
	resp, err := s.Render(ctx, ChartRequest{
		Dataset: def.Dataset,
		Props:   def.Props,
		SplitBy: def.SplitBy,
		Range:   def.Range,
		Title:   def.Title,
		Height:  def.Height,
	})
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", def.Name, err)
	}
	resp.Name = def.Name
	return resp, nil
}

// RenderDashboard renders every configured chart concurrently. Results keep definition order.
func (s *Service) RenderDashboard(ctx context.Context) (*DashboardResponse, error) {
	defs, err := s.definitions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chart definitions: %w", err)
	}

	charts := make([]*ChartResponse, len(defs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(dashboardConcurrency)
	for i, def := range defs {
		g.Go(func() error {
			resp, err := s.renderDefinition(gctx, def)
			if err != nil {
				return err
			}
			charts[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DashboardResponse{Charts: charts}, nil
}

// Definitions lists the configured charts.
func (s *Service) Definitions(ctx context.Context) ([]DefinitionSummary, error) {
	defs, err := s.definitions.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DefinitionSummary, 0, len(defs))
	for _, def := range defs {
		out = append(out, DefinitionSummary{
			Name:        def.Name,
			Title:       def.Title,
			Dataset:     def.Dataset,
			Props:       def.Props,
			SplitBy:     def.SplitBy,
			Range:       def.Range,
			Height:      def.Height,
			Fingerprint: def.Fingerprint,
		})
	}
	return out, nil
}

func (s *Service) normalizeAndValidate(req ChartRequest) (ChartRequest, series.Config, error) {
	req.Dataset = strings.TrimSpace(req.Dataset)
	if req.Dataset == "" {
		return req, series.Config{}, invalidQueryf("dataset is required")
	}
	if req.Range > s.opts.MaxRange {
		return req, series.Config{}, invalidQueryf("range %d exceeds max_range %d", req.Range, s.opts.MaxRange)
	}
	if req.Height < 0 {
		return req, series.Config{}, invalidQueryf("height must not be negative")
	}
	if req.Height == 0 {
		req.Height = s.opts.DefaultHeight
	}

	cfg := series.Config{Props: req.Props, SplitBy: req.SplitBy, Range: req.Range}
	if err := cfg.Validate(); err != nil {
		return req, cfg, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return req, cfg, nil
}

// loadRecords coalesces concurrent loads of the same dataset window into one store query.
// The returned slice is shared between callers and must not be mutated.
func (s *Service) loadRecords(ctx context.Context, dataset string, start, end time.Time) ([]*v1.Record, error) {
	key := fmt.Sprintf("%s|%d|%d", dataset, start.UnixNano(), end.UnixNano())
	v, err, shared := s.loads.Do(key, func() (interface{}, error) {
		return s.store.ListRecords(ctx, dataset, start, end, s.opts.MaxRecords)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("[Charts] Shared record load", "dataset", dataset)
	}
	return v.([]*v1.Record), nil
}

// toSeriesRecords flattens stored records into alignment input.
// The envelope date replaces any "date" key in the payload.
func toSeriesRecords(records []*v1.Record) []series.Record {
	out := make([]series.Record, 0, len(records))
	for _, rec := range records {
		row := make(series.Record, len(rec.Data)+1)
		for k, v := range rec.Data {
			row[k] = v
		}
		if rec.OccurredAt != nil {
			row[series.DateField] = *rec.OccurredAt
		} else {
			row[series.DateField] = rec.Date
		}
		out = append(out, row)
	}
	return out
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
