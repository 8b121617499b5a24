package cli

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/matzehuels/eqsteps/pkg/anim"
)

// easingSamples is the number of points plotted per curve.
const easingSamples = 60

// easingCommand creates the easing command, which plots the configured
// curve of each animation kind.
func (c *CLI) easingCommand() *cobra.Command {
	var (
		kind   string
		height int
	)

	cmd := &cobra.Command{
		Use:   "easing",
		Short: "Plot the easing curve of each animation kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			timings := c.config().AnimTimings()
			kinds := anim.Kinds
			if kind != "" {
				if _, ok := timings[anim.Kind(kind)]; !ok {
					return fmt.Errorf("unknown animation kind %q", kind)
				}
				kinds = []anim.Kind{anim.Kind(kind)}
			}
			for _, k := range kinds {
				plotEasing(cmd.OutOrStdout(), k, timings.Of(k), height)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "plot a single kind")
	cmd.Flags().IntVar(&height, "height", 10, "plot height in rows")

	return cmd
}

// plotEasing draws eased progress against linear time.
func plotEasing(w io.Writer, k anim.Kind, t anim.Timing, height int) {
	data := make([]float64, easingSamples+1)
	for i := range data {
		data[i] = t.Easing.At(float64(i) / easingSamples)
	}
	caption := fmt.Sprintf("%s · %s · %s", k, t.Duration, t.Easing)
	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(easingSamples),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	)
	fmt.Fprintln(w, graph)
	fmt.Fprintln(w)
}
