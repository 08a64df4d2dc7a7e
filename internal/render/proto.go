package render

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// ToProto encodes the chart as a protobuf Struct with the same field names as its JSON form.
func ToProto(chart *Chart) (*structpb.Struct, error) {
	seriesList := make([]interface{}, 0, len(chart.Series))
	for _, s := range chart.Series {
		seriesList = append(seriesList, map[string]interface{}{
			"key":         s.Key,
			"color":       s.Color,
			"stroke":      s.Stroke,
			"fill":        s.Fill,
			"gradient_id": s.GradientID,
			"stack_id":    s.StackID,
		})
	}

	data := make([]interface{}, 0, len(chart.Data.Rows))
	for _, rec := range chart.Data.Records() {
		data = append(data, rec)
	}

	ticks := make([]interface{}, 0, len(chart.AxisTicks))
	for _, tick := range chart.AxisTicks {
		ticks = append(ticks, tick)
	}

	tooltips := make([]interface{}, 0, len(chart.Tooltips))
	for _, tooltip := range chart.Tooltips {
		lines := make([]interface{}, 0, len(tooltip.Lines))
		for _, line := range tooltip.Lines {
			lines = append(lines, line)
		}
		tooltips = append(tooltips, map[string]interface{}{
			"label": tooltip.Label,
			"lines": lines,
		})
	}

	totals := make(map[string]interface{}, len(chart.Totals))
	for k, v := range chart.Totals {
		totals[k] = v
	}

	msg, err := structpb.NewStruct(map[string]interface{}{
		"title":      chart.Title,
		"height":     chart.Height,
		"series":     seriesList,
		"data":       data,
		"axis_ticks": ticks,
		"tooltips":   tooltips,
		"totals":     totals,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chart as protobuf struct: %w", err)
	}
	return msg, nil
}
