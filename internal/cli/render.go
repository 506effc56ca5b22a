package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dockyard/pkg/errors"
	sceneio "github.com/matzehuels/dockyard/pkg/io"
	"github.com/matzehuels/dockyard/pkg/pipeline"
	"github.com/matzehuels/dockyard/pkg/render"
	"github.com/matzehuels/dockyard/pkg/watch"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file (single format) or base path; "-" writes to stdout
	formats    []string // text, svg, json, dot, graphviz
	cellWidth  float64  // nominal cell width for svg/json
	cellHeight float64  // nominal cell height for svg/json
	noCache    bool     // bypass the artifact cache entirely
	refresh    bool     // ignore cached artifacts but store fresh ones
	watch      bool     // re-render whenever the scene file changes
}

// renderCommand creates the render command.
//
// With a single text format and no --output the result goes to stdout; every
// other combination writes one file per format next to the scene file.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		cellWidth:  render.DefaultMetrics.CellWidth,
		cellHeight: render.DefaultMetrics.CellHeight,
	}

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a scene file as text, SVG, JSON or Graphviz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := errors.ValidateFormats(opts.formats); err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			err = c.runRender(cmd.Context(), runner, args[0], &opts)
			if !opts.watch {
				return err
			}
			if err != nil {
				printError("%s", errors.UserMessage(err))
			}

			w := watch.New(args[0], watch.WithLogger(c.Logger))
			return w.Run(cmd.Context(), func(ctx context.Context) error {
				return c.runRender(ctx, runner, args[0], &opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): text (default), svg, json, dot, graphviz (comma-separated)")
	cmd.Flags().Float64Var(&opts.cellWidth, "cell-width", opts.cellWidth, "nominal cell width for svg and json")
	cmd.Flags().Float64Var(&opts.cellHeight, "cell-height", opts.cellHeight, "nominal cell height for svg and json")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the scene file changes")

	return cmd
}

// runRender loads the scene at input and renders every requested format.
func (c *CLI) runRender(ctx context.Context, runner *pipeline.Runner, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := sceneio.ImportScene(input, sceneio.WithDefaultToggles(c.Config.Surface))
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %d items", input, len(doc.Items))

	res, err := runner.Execute(ctx, pipeline.Options{
		Scene:   doc,
		Formats: opts.formats,
		Metrics: render.Metrics{CellWidth: opts.cellWidth, CellHeight: opts.cellHeight, Unit: render.DefaultMetrics.Unit},
		Refresh: opts.refresh,
	})
	if err != nil {
		return err
	}

	if toStdout(opts) {
		_, err := os.Stdout.Write(res.Artifacts[opts.formats[0]])
		return err
	}

	for _, w := range res.Warnings {
		printWarning("%s", w.Error())
	}
	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := writeFile(path, res.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	cols, rows := res.Surface.Extent()
	printStats(cols, rows, res.Stats.Cells, len(res.Warnings), len(res.CacheInfo.Misses) == 0)
	prog.done(fmt.Sprintf("Rendered %s", input))
	return nil
}

func toStdout(opts *renderOpts) bool {
	if opts.output == "-" {
		return len(opts.formats) == 1
	}
	return opts.output == "" && len(opts.formats) == 1 && opts.formats[0] == pipeline.FormatText
}

// extensions maps formats to file extensions where they differ. JSON output
// gets its own suffix so it never lands on a JSON scene file.
var extensions = map[string]string{
	pipeline.FormatText:     "txt",
	pipeline.FormatJSON:     "layout.json",
	pipeline.FormatDOT:      "dot",
	pipeline.FormatGraphviz: "gv.svg",
}

func extension(format string) string {
	if ext, ok := extensions[format]; ok {
		return ext
	}
	return format
}

// outputPath picks the file for one format. A single format honors output
// verbatim; several formats treat output (or the input without its
// extension) as a base path.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && output != "-" && !multiple {
		return output
	}
	base := output
	if base == "" || base == "-" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base + "." + extension(format)
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}

// openOutput creates path, making parent directories as needed.
func openOutput(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
