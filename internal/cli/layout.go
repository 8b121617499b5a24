package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eqsteps/pkg/pipeline"
)

// layoutCommand creates the layout command, which prints the frame list of
// one step as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		n      int
		width  float64
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Print the laid-out frames of a step as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.pipelineOptions()
			opts.Formats = []string{pipeline.FormatJSON}
			opts.Width = width

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			doc, err := runner.Load(ctx, args[0], opts)
			if err != nil {
				return err
			}
			artifacts, _, err := runner.RenderWithCacheInfo(ctx, doc, n, opts)
			if err != nil {
				return err
			}
			data := artifacts[pipeline.FormatJSON]

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Step %d laid out", n)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVarP(&n, "step", "s", 0, "step to lay out")
	cmd.Flags().Float64Var(&width, "width", 0, "viewport width (default from config)")

	return cmd
}
