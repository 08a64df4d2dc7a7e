package chartdef

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aevon-lab/chartline/internal/core/series"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by Get for unknown chart names.
var ErrNotFound = errors.New("chart definition not found")

// Definition is a named, pre-configured chart loaded from YAML.
type Definition struct {
	Name        string
	Title       string
	Dataset     string
	Props       []string
	SplitBy     string
	Range       int // trailing days; the chart shows Range+1 rows
	Height      int
	Fingerprint string // SHA-256 of the raw YAML file
}

// SeriesConfig is the alignment config this chart renders with.
func (d Definition) SeriesConfig() series.Config {
	return series.Config{
		Props:   append([]string(nil), d.Props...),
		SplitBy: d.SplitBy,
		Range:   d.Range,
	}
}

// rawDefinition is the on-disk YAML shape.
// range is a string so that "30", "30d" and "4w" all parse.
type rawDefinition struct {
	Name    string   `yaml:"name"`
	Title   string   `yaml:"title"`
	Dataset string   `yaml:"dataset"`
	Props   []string `yaml:"props"`
	SplitBy string   `yaml:"split_by"`
	Range   string   `yaml:"range"`
	Height  int      `yaml:"height"`
}

// Defaults fill in fields a definition file leaves out and bound the ones it sets.
type Defaults struct {
	Range    int
	MaxRange int // 0 disables the bound
	Height   int
}

// Repository gives read access to chart definitions.
type Repository interface {
	Get(ctx context.Context, name string) (*Definition, error)

	// List returns every definition ordered by name.
	List(ctx context.Context) ([]Definition, error)
}

// FileSystemRepository loads one definition per *.yaml file in a directory.
// Definitions are loaded once at startup and cached in memory.
type FileSystemRepository struct {
	dir         string
	defaults    Defaults
	definitions map[string]Definition
}

// NewFileSystemRepository eagerly loads every definition in dir.
// A missing directory yields an empty repository; any malformed file fails the load.
func NewFileSystemRepository(dir string, defaults Defaults) (*FileSystemRepository, error) {
	repo := &FileSystemRepository{
		dir:         dir,
		defaults:    defaults,
		definitions: make(map[string]Definition),
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *FileSystemRepository) load() error {
	info, err := os.Stat(r.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("chart definition dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("chart definition path %q is not a directory", r.dir)
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("reading chart definition dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(r.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading chart file %s: %w", path, err)
		}

		var raw rawDefinition
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing chart file %s: %w", path, err)
		}
		if raw.Name == "" {
			continue // empty / comment-only file
		}

		def, err := r.build(raw)
		if err != nil {
			return fmt.Errorf("chart %q: %w", raw.Name, err)
		}
		def.Fingerprint = fmt.Sprintf("%x", sha256.Sum256(data))

		if _, exists := r.definitions[def.Name]; exists {
			return fmt.Errorf("chart %q: duplicate chart name (check multiple YAML files)", def.Name)
		}
		r.definitions[def.Name] = def
	}
	return nil
}

func (r *FileSystemRepository) build(raw rawDefinition) (Definition, error) {
	if strings.TrimSpace(raw.Dataset) == "" {
		return Definition{}, fmt.Errorf("dataset must not be empty")
	}

	rangeDays := r.defaults.Range
	if raw.Range != "" {
		parsed, err := ParseRange(raw.Range)
		if err != nil {
			return Definition{}, err
		}
		rangeDays = parsed
	}
	if r.defaults.MaxRange > 0 && rangeDays > r.defaults.MaxRange {
		return Definition{}, fmt.Errorf("range %d exceeds max_range %d", rangeDays, r.defaults.MaxRange)
	}

	height := raw.Height
	if height == 0 {
		height = r.defaults.Height
	}
	if height < 0 {
		return Definition{}, fmt.Errorf("height must not be negative")
	}

	title := raw.Title
	if title == "" {
		title = raw.Name
	}

	def := Definition{
		Name:    raw.Name,
		Title:   title,
		Dataset: raw.Dataset,
		Props:   raw.Props,
		SplitBy: raw.SplitBy,
		Range:   rangeDays,
		Height:  height,
	}
	if err := def.SeriesConfig().Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Get returns the definition with the given name, or ErrNotFound.
func (r *FileSystemRepository) Get(_ context.Context, name string) (*Definition, error) {
	def, ok := r.definitions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return &def, nil
}

// List returns all definitions ordered by name.
func (r *FileSystemRepository) List(_ context.Context) ([]Definition, error) {
	return r.Definitions(), nil
}

// Definitions is List without the context, for startup wiring.
func (r *FileSystemRepository) Definitions() []Definition {
	out := make([]Definition, 0, len(r.definitions))
	for _, def := range r.definitions {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// StaticRepository serves a fixed set of definitions, e.g. those resolved at config load.
type StaticRepository struct {
	byName map[string]Definition
	sorted []Definition
}

// NewStaticRepository indexes defs by name. Later duplicates replace earlier ones.
func NewStaticRepository(defs []Definition) *StaticRepository {
	repo := &StaticRepository{byName: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		repo.byName[def.Name] = def
	}
	for _, def := range repo.byName {
		repo.sorted = append(repo.sorted, def)
	}
	sort.Slice(repo.sorted, func(i, j int) bool { return repo.sorted[i].Name < repo.sorted[j].Name })
	return repo
}

func (r *StaticRepository) Get(_ context.Context, name string) (*Definition, error) {
	def, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return &def, nil
}

func (r *StaticRepository) List(_ context.Context) ([]Definition, error) {
	return append([]Definition(nil), r.sorted...), nil
}
