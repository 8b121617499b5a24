package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eqsteps/pkg/pipeline"
	"github.com/matzehuels/eqsteps/pkg/render/nodelink"
)

// treeCommand creates the tree command, which draws the component tree of
// one step with graphviz.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		output   string
		format   string
		n        int
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Draw the component tree of a step (dot, svg or png)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.pipelineOptions()
			opts.Detailed = detailed

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			doc, err := runner.Load(ctx, args[0], opts)
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "dot", "svg":
				f := pipeline.FormatDOT
				if format == "svg" {
					f = pipeline.FormatTree
				}
				opts.Formats = []string{f}
				artifacts, _, err := runner.RenderWithCacheInfo(ctx, doc, n, opts)
				if err != nil {
					return err
				}
				data = artifacts[f]
			case "png":
				snap, err := runner.Layout(ctx, doc, n, opts)
				if err != nil {
					return err
				}
				data, err = nodelink.RenderPNG(nodelink.ToDOT(snap.Root, nodelink.Options{Detailed: detailed}))
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("invalid tree format: %q (must be dot, svg or png)", format)
			}

			if output == "" {
				if format == "dot" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				output = fmt.Sprintf("%s_step%d_tree.%s", basePath("", args[0]), n, format)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Component tree of step %d", n)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout for dot)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg or png")
	cmd.Flags().IntVarP(&n, "step", "s", 0, "step to draw")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show sizes and paddings")

	return cmd
}
