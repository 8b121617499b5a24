package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/eqsteps/pkg/layout"
	"github.com/matzehuels/eqsteps/pkg/step"
)

// stepsCommand creates the steps command, which lists the steps of a
// document.
func (c *CLI) stepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "steps [file]",
		Short: "List the steps of a derivation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			doc, err := runner.Load(cmd.Context(), args[0], c.pipelineOptions())
			if err != nil {
				return err
			}

			printInfo("%s", styleTitle.Render(args[0]))
			printKeyValue("Terms", strconv.Itoa(len(doc.Instructions.Terms)))
			printKeyValue("Dividers", strconv.Itoa(doc.Instructions.HDividers))
			printKeyValue("Hash", doc.Hash[:12])
			printNewline()
			fmt.Println(stepsTable(doc.Instructions))
			return nil
		},
	}
}

// stepsTable renders one row per step: its index, the content it shows, the
// number of style overrides and its caption.
func stepsTable(inst *step.Instructions) string {
	rows := make([][]string, 0, len(inst.Steps))
	for i, st := range inst.Steps {
		rows = append(rows, []string{
			strconv.Itoa(i),
			contentSummary(inst, st.Root.Refs()),
			strconv.Itoa(len(st.Color) + len(st.Opacity)),
			st.Text,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("#", "Content", "Styles", "Caption").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return cellStyle.Foreground(colorAccent)
			}
			return cellStyle
		}).
		String()
}

// contentSummary joins the text of the referenced terms; dividers show as
// a rule.
func contentSummary(inst *step.Instructions, refs []string) string {
	parts := make([]string, 0, len(refs))
	for _, id := range refs {
		ref, err := layout.ParseRef(id)
		switch {
		case err != nil || ref.Index >= len(inst.Terms) && ref.Kind == layout.RefTerm:
			parts = append(parts, id)
		case ref.Kind == layout.RefDivider:
			parts = append(parts, "─")
		default:
			parts = append(parts, inst.Terms[ref.Index])
		}
	}
	return strings.Join(parts, " ")
}
