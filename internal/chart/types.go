package chart

import (
	"fmt"

	"github.com/aevon-lab/chartline/internal/render"
	"google.golang.org/protobuf/types/known/structpb"
)

// ChartRequest describes one ad-hoc chart over a dataset.
type ChartRequest struct {
	Dataset string
	Props   []string
	SplitBy string
	Range   int // trailing days; the chart holds Range+1 rows
	Title   string
	Height  int // 0 uses the configured default
}

// ChartResponse is a rendered chart plus the window it covers.
type ChartResponse struct {
	Name        string `json:"name,omitempty"`
	Dataset     string `json:"dataset"`
	Range       int    `json:"range"`
	Start       string `json:"start"`
	End         string `json:"end"`
	RecordCount int    `json:"record_count"`
	Truncated   bool   `json:"truncated"`

	*render.Chart
}

// Proto encodes the response as a protobuf Struct carrying the same fields as the JSON form.
func (r *ChartResponse) Proto() (*structpb.Struct, error) {
	msg, err := render.ToProto(r.Chart)
	if err != nil {
		return nil, err
	}
	msg.Fields["dataset"] = structpb.NewStringValue(r.Dataset)
	msg.Fields["range"] = structpb.NewNumberValue(float64(r.Range))
	msg.Fields["start"] = structpb.NewStringValue(r.Start)
	msg.Fields["end"] = structpb.NewStringValue(r.End)
	msg.Fields["record_count"] = structpb.NewNumberValue(float64(r.RecordCount))
	msg.Fields["truncated"] = structpb.NewBoolValue(r.Truncated)
	if r.Name != "" {
		msg.Fields["name"] = structpb.NewStringValue(r.Name)
	}
	return msg, nil
}

// DashboardResponse holds every configured chart, ordered by name.
type DashboardResponse struct {
	Charts []*ChartResponse `json:"charts"`
}

func (r *DashboardResponse) Proto() (*structpb.Struct, error) {
	charts := make([]*structpb.Value, 0, len(r.Charts))
	for _, c := range r.Charts {
		msg, err := c.Proto()
		if err != nil {
			return nil, fmt.Errorf("chart %q: %w", c.Name, err)
		}
		charts = append(charts, structpb.NewStructValue(msg))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"charts": structpb.NewListValue(&structpb.ListValue{Values: charts}),
	}}, nil
}

// DefinitionSummary is the listing form of a configured chart.
type DefinitionSummary struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Dataset     string   `json:"dataset"`
	Props       []string `json:"props"`
	SplitBy     string   `json:"split_by,omitempty"`
	Range       int      `json:"range"`
	Height      int      `json:"height"`
	Fingerprint string   `json:"fingerprint"`
}
