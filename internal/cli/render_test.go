package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const salesJSONL = `{"date":"2024-01-01","region":"us","sales":10}
{"date":"2024-01-01","region":"eu","sales":5}
{"date":"2024-01-03T08:00:00Z","region":"us","sales":7}
{"date":"2024-01-03","region":"us","sales":99}
{"date":"not a date","region":"apac","sales":1}
`

func writeRecords(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testRenderOptions(path string) *renderOptions {
	return &renderOptions{
		file:     path,
		props:    []string{"sales"},
		splitBy:  "region",
		rangeArg: "3",
		height:   300,
		output:   "csv",
		timezone: "UTC",
		width:    80,
		nowFn:    func() time.Time { return time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC) },
	}
}

func TestRender_CSV(t *testing.T) {
	opts := testRenderOptions(writeRecords(t, "sales.jsonl", salesJSONL))

	var out bytes.Buffer
	require.NoError(t, opts.run(&out))

	expected := strings.Join([]string{
		"date,us sales,eu sales,apac sales",
		"2023-12-31,0,0,0",
		"2024-01-01,10,5,0",
		"2024-01-02,0,0,0",
		"2024-01-03,7,0,0",
	}, "\n") + "\n"
	require.Equal(t, expected, out.String())
}

func TestRender_JSON(t *testing.T) {
	opts := testRenderOptions(writeRecords(t, "sales.jsonl", salesJSONL))
	opts.output = "json"
	opts.splitBy = ""
	opts.title = "Sales"

	var out bytes.Buffer
	require.NoError(t, opts.run(&out))

	var decoded struct {
		Title  string                   `json:"title"`
		Height int                      `json:"height"`
		Data   []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Equal(t, "Sales", decoded.Title)
	require.Equal(t, 300, decoded.Height)
	require.Len(t, decoded.Data, 4)
	require.Equal(t, "2024-01-01", decoded.Data[1]["date"])
	require.Equal(t, float64(10), decoded.Data[1]["sales"])
}

func TestRender_Table(t *testing.T) {
	opts := testRenderOptions(writeRecords(t, "sales.json", `[{"date":"2024-01-02","sales":1500}]`))
	opts.output = "table"
	opts.splitBy = ""

	var out bytes.Buffer
	require.NoError(t, opts.run(&out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Equal(t, "sales", lines[0])
	require.Contains(t, out.String(), "2024-01-02")
	require.Contains(t, out.String(), "1.5K")
}

func TestRender_InvalidOptions(t *testing.T) {
	path := writeRecords(t, "sales.jsonl", salesJSONL)

	tests := []struct {
		name    string
		mutate  func(o *renderOptions)
		wantErr string
	}{
		{name: "bad range", mutate: func(o *renderOptions) { o.rangeArg = "-3" }, wantErr: "range"},
		{name: "bad timezone", mutate: func(o *renderOptions) { o.timezone = "Mars/Olympus" }, wantErr: "invalid timezone"},
		{name: "bad output", mutate: func(o *renderOptions) { o.output = "xml" }, wantErr: "unknown output format"},
		{name: "blank props", mutate: func(o *renderOptions) { o.props = []string{" "} }, wantErr: "at least one prop"},
		{name: "missing file", mutate: func(o *renderOptions) { o.file = filepath.Join(t.TempDir(), "nope.jsonl") }, wantErr: "open record file"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := testRenderOptions(path)
			tc.mutate(opts)
			err := opts.run(&bytes.Buffer{})
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestRenderCommand_RequiresFlags(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"render", "--props", "sales"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "file")
}

func TestRenderCommand_CSV(t *testing.T) {
	path := writeRecords(t, "sales.json", `[]`)

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetArgs([]string{"render", "--file", path, "--props", "sales,refunds", "--range", "1w", "--output", "csv"})
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})

	require.NoError(t, root.Execute())
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Equal(t, "date,sales,refunds", lines[0])
	require.Len(t, lines, 9)
	require.True(t, strings.HasSuffix(lines[8], ",0,0"))
}
