package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/viewstack/pkg/pipeline"
	"github.com/matzehuels/viewstack/pkg/render/sink"
	"github.com/matzehuels/viewstack/pkg/scene"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string  // output file (single format) or base path, "-" for stdout
	formats    string  // comma-separated output formats
	width      float64 // surface width, 0 for config or scene default
	height     float64 // surface height
	scale      float64 // PNG scale factor
	background string  // surface background colour
	noCache    bool    // bypass the artifact cache entirely
	refresh    bool    // re-render and overwrite cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Lay out a scene and write SVG, PNG, PDF or JSON",
		Long: `Render lays out a scene file (TOML, YAML or JSON) against a target surface
size and writes one file per requested format.

Size is taken from the flags, then the config file, then the scene document.`,
		Example: `  viewstack render examples/two_rects.toml
  viewstack render card.yaml -f svg,png --scale 3 -o out/card
  viewstack render card.json -f json -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runRender(ctx, cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(sink.Formats(), ", ")+" (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "surface width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "surface height")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor")
	cmd.Flags().StringVar(&opts.background, "background", "", "background colour (name or #rrggbb)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, stdout io.Writer, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	doc, err := scene.Load(input)
	if err != nil {
		return err
	}

	popts := pipelineOptions(cfg, opts.width, opts.height)
	popts.Formats = parseFormats(opts.formats)
	if len(popts.Formats) == 0 {
		popts.Formats = parseFormats(cfg.Format)
	}
	popts.Scale = opts.scale
	if popts.Scale == 0 {
		popts.Scale = cfg.Scale
	}
	popts.Background = opts.background
	popts.Refresh = opts.refresh
	popts.Logger = logger

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(input)+"...")
	spinner.Start()
	result, err := runner.Execute(ctx, doc, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	formats := sortedFormats(result.Artifacts)
	if opts.output == "-" {
		if len(formats) != 1 {
			return fmt.Errorf("stdout output needs exactly one format, got %d", len(formats))
		}
		_, err := stdout.Write(result.Artifacts[formats[0]])
		return err
	}

	var paths []string
	for _, format := range formats {
		path := outputPath(opts.output, input, format, len(formats))
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		logger.Debugf("Wrote %s: %d bytes", path, len(result.Artifacts[format]))
		paths = append(paths, path)
	}

	prog.done("Rendered " + input)
	out := newReport(stdout)
	out.success("Rendered %s at %v", docName(doc, input), result.Size)
	for _, p := range paths {
		out.file(p)
	}
	out.stats(result.Stats.NodeCount, result.Measured.String(), result.CacheInfo.RenderHit)
	out.next("Inspect the layout", appName+" measure "+input)
	return nil
}

// pipelineOptions applies config defaults beneath explicit flag values.
func pipelineOptions(cfg Config, width, height float64) pipeline.Options {
	opts := pipeline.Options{Width: width, Height: height}
	if opts.Width == 0 {
		opts.Width = cfg.Width
	}
	if opts.Height == 0 {
		opts.Height = cfg.Height
	}
	return opts
}

// basePath derives the base output path from the output and input paths,
// stripping a format extension from either.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(sink.Formats(), strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns the file for format. A single format written to an
// explicit output path keeps that path unchanged.
func outputPath(output, input, format string, count int) string {
	if output != "" && count == 1 && filepath.Ext(output) != "" {
		return output
	}
	return basePath(output, input) + sink.Format(format).Ext()
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func sortedFormats(artifacts map[string][]byte) []string {
	out := make([]string, 0, len(artifacts))
	for f := range artifacts {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

func docName(doc *scene.Document, input string) string {
	if doc.Name != "" {
		return doc.Name
	}
	return filepath.Base(input)
}
