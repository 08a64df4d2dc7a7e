package series

// ResolveColumns derives the output column set from the whole record set.
// Split values keep first-seen order and columns are grouped by prop, so every row
// of a table shares the same columns in the same order.
func ResolveColumns(records []Record, cfg Config) []ColumnKey {
	if cfg.SplitBy == "" {
		columns := make([]ColumnKey, 0, len(cfg.Props))
		for _, prop := range cfg.Props {
			columns = append(columns, ColumnKey{Prop: prop})
		}
		return dedupeColumns(columns)
	}

	splitValues := distinctSplitValues(records, cfg.SplitBy)
	columns := make([]ColumnKey, 0, len(cfg.Props)*len(splitValues))
	for _, prop := range cfg.Props {
		for _, value := range splitValues {
			columns = append(columns, ColumnKey{SplitValue: value, Prop: prop, Split: true})
		}
	}
	return dedupeColumns(columns)
}

func distinctSplitValues(records []Record, splitBy string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, rec := range records {
		value := SplitValue(rec[splitBy])
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	return values
}

// dedupeColumns drops repeated props (e.g. props: [sales, sales]).
func dedupeColumns(columns []ColumnKey) []ColumnKey {
	seen := make(map[ColumnKey]struct{}, len(columns))
	out := columns[:0]
	for _, column := range columns {
		if _, ok := seen[column]; ok {
			continue
		}
		seen[column] = struct{}{}
		out = append(out, column)
	}
	return out
}
