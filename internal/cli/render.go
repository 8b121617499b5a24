package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eqsteps/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file (single step and format) or base path
	formats  string  // comma-separated formats
	step     int     // step to render; negative renders every step
	width    float64 // viewport width
	scale    float64 // PNG scale factor
	fontFile string  // TrueType font for PNG output
	fontSize float64 // term font size
	caption  bool    // draw the step caption
	detailed bool    // detailed tree diagrams
	noColor  bool    // plain text output
	refresh  bool    // ignore cached artifacts
}

// renderCommand creates the render command, which writes every requested
// format for one or all steps.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{step: -1}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render steps to SVG, PNG, text, JSON or tree diagrams",
		Long: `Render lays out each step at rest and writes it in the requested formats.

Output files are named <base>_step<N>.<format>. When a single step and a single
format are requested, --output names the file exactly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single step and format) or base path")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+formatList()+" (comma-separated, default svg)")
	cmd.Flags().IntVarP(&opts.step, "step", "s", opts.step, "step to render (default: all steps)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "viewport width (default from config)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.fontFile, "font", "", "TrueType font file for PNG output")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, "term font size")
	cmd.Flags().BoolVar(&opts.caption, "caption", false, "draw the step caption")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show sizes and paddings in tree diagrams")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colors in text output")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, ro renderOpts) error {
	opts := c.pipelineOptions()
	opts.Formats = parseFormats(ro.formats)
	opts.Width = ro.width
	opts.Scale = ro.scale
	opts.FontFile = ro.fontFile
	opts.FontSize = ro.fontSize
	opts.Caption = ro.caption
	opts.Detailed = ro.detailed
	opts.NoColor = ro.noColor
	opts.Refresh = ro.refresh
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	sw := startStopwatch(c.Logger)
	doc, err := runner.Load(ctx, input, opts)
	if err != nil {
		return err
	}

	steps, err := stepRange(ro.step, doc.Steps())
	if err != nil {
		return err
	}

	base := basePath(ro.output, input)
	exact := ro.output != "" && len(steps) == 1 && len(opts.Formats) == 1
	for _, n := range steps {
		artifacts, cached, err := runner.RenderWithCacheInfo(ctx, doc, n, opts)
		if err != nil {
			return err
		}
		size := 0
		for _, format := range opts.Formats {
			path := fmt.Sprintf("%s_step%d.%s", base, n, format)
			if exact {
				path = ro.output
			}
			if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			size += len(artifacts[format])
			printFile(path)
		}
		printStats(len(opts.Formats), "formats", size, cached)
		sw.count(cached)
	}
	sw.done(fmt.Sprintf("Rendered %d step(s)", len(steps)))
	return nil
}

// stepRange returns the steps selected by a --step flag: all of them when
// n is negative.
func stepRange(n, steps int) ([]int, error) {
	if n >= steps {
		return nil, fmt.Errorf("step %d out of range: document has %d steps", n, steps)
	}
	if n >= 0 {
		return []int{n}, nil
	}
	out := make([]int, steps)
	for i := range out {
		out[i] = i
	}
	return out, nil
}

func formatList() string {
	return strings.Join(pipeline.FormatNames(), ", ")
}
