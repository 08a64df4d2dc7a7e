package chartdef

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aevon-lab/chartline/internal/core/series"
	"github.com/stretchr/testify/require"
)

var testDefaults = Defaults{Range: 30, MaxRange: 365, Height: 300}

// writeChart writes a single chart YAML file into dir.
func writeChart(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFileSystemRepository_LoadAndList(t *testing.T) {
	dir := t.TempDir()
	writeChart(t, dir, "sales.yaml", `
name: "sales_by_region"
title: "Sales by region"
dataset: "sales"
props: ["sales"]
split_by: "region"
range: "4w"
height: 240
`)
	writeChart(t, dir, "signups.yml", `
name: "signups"
dataset: "users"
props: ["signups", "activations"]
`)
	writeChart(t, dir, "empty.yaml", "# nothing here\n")
	writeChart(t, dir, "notes.txt", "name: ignored")

	repo, err := NewFileSystemRepository(dir, testDefaults)
	require.NoError(t, err)

	defs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 2)

	require.Equal(t, "sales_by_region", defs[0].Name)
	require.Equal(t, "Sales by region", defs[0].Title)
	require.Equal(t, 28, defs[0].Range)
	require.Equal(t, 240, defs[0].Height)
	require.Len(t, defs[0].Fingerprint, 64)

	require.Equal(t, "signups", defs[1].Name)
	require.Equal(t, "signups", defs[1].Title, "title defaults to name")
	require.Equal(t, 30, defs[1].Range)
	require.Equal(t, 300, defs[1].Height)
	require.Equal(t, series.Config{Props: []string{"signups", "activations"}, Range: 30}, defs[1].SeriesConfig())
}

func TestFileSystemRepository_Get(t *testing.T) {
	dir := t.TempDir()
	writeChart(t, dir, "sales.yaml", `
name: "sales"
dataset: "sales"
props: ["sales"]
range: "7"
`)

	repo, err := NewFileSystemRepository(dir, testDefaults)
	require.NoError(t, err)

	def, err := repo.Get(context.Background(), "sales")
	require.NoError(t, err)
	require.Equal(t, 7, def.Range)

	_, err = repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileSystemRepository_MissingDirIsEmpty(t *testing.T) {
	repo, err := NewFileSystemRepository(filepath.Join(t.TempDir(), "nope"), testDefaults)
	require.NoError(t, err)
	require.Empty(t, repo.Definitions())
}

func TestFileSystemRepository_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "missing dataset",
			files:   map[string]string{"a.yaml": "name: a\nprops: [x]\n"},
			wantErr: "dataset must not be empty",
		},
		{
			name:    "missing props",
			files:   map[string]string{"a.yaml": "name: a\ndataset: d\n"},
			wantErr: "at least one prop is required",
		},
		{
			name:    "bad range",
			files:   map[string]string{"a.yaml": "name: a\ndataset: d\nprops: [x]\nrange: soon\n"},
			wantErr: "invalid range",
		},
		{
			name:    "range over max",
			files:   map[string]string{"a.yaml": "name: a\ndataset: d\nprops: [x]\nrange: 400d\n"},
			wantErr: "exceeds max_range",
		},
		{
			name:    "date prop without split",
			files:   map[string]string{"a.yaml": "name: a\ndataset: d\nprops: [date]\n"},
			wantErr: "collides with the row date key",
		},
		{
			name: "duplicate names",
			files: map[string]string{
				"a.yaml": "name: same\ndataset: d\nprops: [x]\n",
				"b.yaml": "name: same\ndataset: d\nprops: [y]\n",
			},
			wantErr: "duplicate chart name",
		},
		{
			name:    "malformed yaml",
			files:   map[string]string{"a.yaml": "name: [unterminated\n"},
			wantErr: "parsing chart file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeChart(t, dir, name, content)
			}
			_, err := NewFileSystemRepository(dir, testDefaults)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestStaticRepository(t *testing.T) {
	repo := NewStaticRepository([]Definition{
		{Name: "b", Dataset: "x"},
		{Name: "a", Dataset: "y"},
	})

	defs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, "a", defs[0].Name)
	require.Equal(t, "b", defs[1].Name)

	def, err := repo.Get(context.Background(), "b")
	require.NoError(t, err)
	require.Equal(t, "x", def.Dataset)

	_, err = repo.Get(context.Background(), "c")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "30", want: 30},
		{input: "30d", want: 30},
		{input: "4w", want: 28},
		{input: " 2W ", want: 14},
		{input: "0", want: 0},
		{input: "", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "1.5d", wantErr: true},
		{input: "3m", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
