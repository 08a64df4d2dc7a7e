// Package recordfile loads chart records from local JSON and JSONL files.
package recordfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aevon-lab/chartline/internal/core/series"
	"github.com/bytedance/sonic"
)

// Numbers stay json.Number so cells keep their exact decimal text.
var api = sonic.Config{UseNumber: true}.Froze()

// ReadFile loads records from path. Files ending in .jsonl or .ndjson hold one object
// per line; anything else is a JSON array of objects or an object with a "records" array.
func ReadFile(path string) ([]series.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open record file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return ReadLines(f)
	default:
		return ReadJSON(f)
	}
}

// ReadJSON decodes a whole JSON document.
func ReadJSON(r io.Reader) ([]series.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []series.Record{}, nil
	}

	if data[0] == '{' {
		var envelope struct {
			Records []map[string]interface{} `json:"records"`
		}
		if err := api.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		return toRecords(envelope.Records), nil
	}

	var raw []map[string]interface{}
	if err := api.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return toRecords(raw), nil
}

// ReadLines decodes one JSON object per line. Blank lines are ignored and lines that
// are not JSON objects are skipped with a warning.
func ReadLines(r io.Reader) ([]series.Record, error) {
	records := []series.Record{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineNo := 0
	skipped := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec map[string]interface{}
		if err := api.Unmarshal(line, &rec); err != nil || rec == nil {
			slog.Warn("[RecordFile] Skipping invalid line", "line", lineNo, "error", err)
			skipped++
			continue
		}
		records = append(records, series.Record(rec))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}

	if skipped > 0 {
		slog.Debug("[RecordFile] Finished with skipped lines", "records", len(records), "skipped", skipped)
	}
	return records, nil
}

func toRecords(raw []map[string]interface{}) []series.Record {
	records := make([]series.Record, 0, len(raw))
	for _, m := range raw {
		if m == nil {
			continue
		}
		records = append(records, series.Record(m))
	}
	return records
}
