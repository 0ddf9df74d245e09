package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"statutes/internal/run"
)

// renderSummary renders the per-volume results as a rounded table on a
// terminal and as tab-separated lines when output is redirected.
func renderSummary(summary run.Summary, pretty bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Volume", "Year", "Bills", "Skipped", "Failed", "Status"})

	for _, result := range summary.Results {
		status := "ok"
		if result.Err != nil {
			status = "failed"
		}
		tw.AppendRow(table.Row{
			result.Batch.Name(),
			result.Batch.Year,
			result.Bills,
			result.Skipped,
			result.Failed,
			status,
		})
	}

	configs := make([]table.ColumnConfig, 0, 4)
	for _, column := range []int{2, 3, 4, 5} {
		configs = append(configs, table.ColumnConfig{
			Number:      column,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	if !pretty {
		return tw.RenderTSV()
	}
	return tw.Render()
}
