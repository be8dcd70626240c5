// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/katalvlaran/trifid/scoring"
)

// RenderTable prints candidates as a table in the given order.
func RenderTable(w io.Writer, cands []Candidate) error {
	if len(cands) == 0 {
		_, err := fmt.Fprintln(w, "(no candidates)")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Index", "Key", "Score", "Plaintext"})
	for i, c := range cands {
		t.AppendRow(table.Row{i + 1, c.Index, c.Key, formatScore(c.Score), c.Text})
	}
	t.Render()

	return nil
}

// RenderDiagnostics prints the per-order breakdown of a score.
func RenderDiagnostics(w io.Writer, res scoring.Result) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Order", "Grams", "Distinct", "Hits", "Score"})
	for _, o := range res.Diagnostics.Orders {
		t.AppendRow(table.Row{o.Order, o.Grams, o.Distinct, o.Hits, formatScore(o.Score)})
	}
	t.AppendFooter(table.Row{"Total", res.Diagnostics.Length, "", "", formatScore(res.Total)})
	t.Render()

	return nil
}

func formatScore(v float64) string {
	if v == scoring.MinScore {
		return "n/a"
	}

	return strconv.FormatFloat(v, 'f', 4, 64)
}
