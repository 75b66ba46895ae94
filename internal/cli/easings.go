package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/phanxgames/choreo"
)

var easingSamples = []float64{0, 0.25, 0.5, 0.75, 1}

func newEasingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "easings",
		Short: "Print every easing curve at a few sample points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printEasings(cmd.OutOrStdout())
		},
	}
}

func printEasings(w io.Writer) error {
	headers := []string{"easing"}
	for _, t := range easingSamples {
		headers = append(headers, "t="+strconv.FormatFloat(t, 'f', -1, 64))
	}
	var rows [][]string
	for _, e := range choreo.Easings() {
		row := []string{e.String()}
		for _, t := range easingSamples {
			row = append(row, strconv.FormatFloat(choreo.Evaluate(e, t), 'f', 4, 64))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 0 {
				return StyleTitle
			}
			return StyleNumber
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
