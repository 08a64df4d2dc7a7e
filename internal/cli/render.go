package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aevon-lab/chartline/internal/core/chartdef"
	"github.com/aevon-lab/chartline/internal/core/series"
	"github.com/aevon-lab/chartline/internal/recordfile"
	"github.com/aevon-lab/chartline/internal/render"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	file     string
	props    []string
	splitBy  string
	rangeArg string
	title    string
	height   int
	output   string
	timezone string
	palette  []string
	width    int
	watch    bool

	nowFn func() time.Time
}

func newRenderCommand() *cobra.Command {
	opts := &renderOptions{nowFn: time.Now}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Align a local JSON or JSONL record file and print the chart table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				return opts.runWatch(ctx, cmd.OutOrStdout())
			}
			return opts.run(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Record file (.json or .jsonl)")
	cmd.Flags().StringSliceVarP(&opts.props, "props", "p", nil, "Value fields to chart (comma separated)")
	cmd.Flags().StringVarP(&opts.splitBy, "split-by", "s", "", "Categorical field splitting each prop into series")
	cmd.Flags().StringVarP(&opts.rangeArg, "range", "r", "30", "Trailing window in days (e.g. 30, 30d, 4w)")
	cmd.Flags().StringVar(&opts.title, "title", "", "Chart title")
	cmd.Flags().IntVar(&opts.height, "height", 300, "Chart height carried into json output")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "Output format (table, json, csv)")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "Local", "Timezone deciding calendar days (e.g. UTC, Europe/Berlin)")
	cmd.Flags().StringSliceVar(&opts.palette, "palette", nil, "Series colour tokens, cycled by series index")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Table width (0 = terminal width)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-render whenever the file changes")

	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("props")

	return cmd
}

func (o *renderOptions) validate() (series.Config, *time.Location, error) {
	rangeDays, err := chartdef.ParseRange(o.rangeArg)
	if err != nil {
		return series.Config{}, nil, err
	}

	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		return series.Config{}, nil, fmt.Errorf("invalid timezone %q: %w", o.timezone, err)
	}

	switch o.output {
	case "table", "json", "csv":
	default:
		return series.Config{}, nil, fmt.Errorf("unknown output format %q (want table, json or csv)", o.output)
	}

	props := make([]string, 0, len(o.props))
	for _, p := range o.props {
		if p = strings.TrimSpace(p); p != "" {
			props = append(props, p)
		}
	}

	cfg := series.Config{Props: props, SplitBy: strings.TrimSpace(o.splitBy), Range: rangeDays}
	if err := cfg.Validate(); err != nil {
		return series.Config{}, nil, err
	}
	return cfg, loc, nil
}

func (o *renderOptions) run(w io.Writer) error {
	cfg, loc, err := o.validate()
	if err != nil {
		return err
	}
	return o.renderOnce(w, cfg, loc)
}

func (o *renderOptions) renderOnce(w io.Writer, cfg series.Config, loc *time.Location) error {
	records, err := recordfile.ReadFile(o.file)
	if err != nil {
		return err
	}

	table, err := series.AlignAt(o.nowFn().In(loc), records, cfg)
	if err != nil {
		return err
	}

	title := o.title
	if title == "" {
		title = strings.Join(cfg.Props, ", ")
	}
	chart := render.Build(render.Spec{Title: title, Height: o.height}, table, render.NewPalette(o.palette...), render.FormatLargeNumber)

	slog.Debug("Rendered chart", "records", len(records), "rows", len(table.Rows), "columns", len(table.Columns))

	switch o.output {
	case "json":
		out, err := sonic.ConfigStd.MarshalIndent(chart, "", "  ")
		if err != nil {
			return fmt.Errorf("encode chart: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "csv":
		return render.WriteCSV(w, chart)
	default:
		width := o.width
		if width <= 0 {
			width = render.TerminalWidth()
		}
		return render.WriteTable(w, chart, render.FormatLargeNumber, width)
	}
}

// runWatch renders once, then again after every change to the file until ctx ends.
// Read errors while watching are logged so a half-written file does not stop the loop.
func (o *renderOptions) runWatch(ctx context.Context, w io.Writer) error {
	cfg, loc, err := o.validate()
	if err != nil {
		return err
	}

	watcher, err := recordfile.NewWatcher(o.file)
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := o.renderOnce(w, cfg, loc); err != nil {
		slog.Error("Render failed", "file", o.file, "error", err)
	}

	return watcher.Run(ctx, func() {
		fmt.Fprintf(w, "\n-- %s --\n", o.nowFn().In(loc).Format(time.DateTime))
		if err := o.renderOnce(w, cfg, loc); err != nil {
			slog.Error("Render failed", "file", o.file, "error", err)
		}
	})
}
