/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package report renders run and calibration results as markdown
// tables for logs and CI summaries.
package report

import (
	"bytes"
	"fmt"
	"io"

	"chainguard.dev/aeobench/run"
	"chainguard.dev/aeobench/scorer"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// markdownTable returns a writer that renders GitHub-flavored markdown
// tables: left-aligned cells, no row wrapping, headers kept verbatim.
func markdownTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: 100,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// ByCase renders a run report as a per-case markdown table followed by
// run-level aggregates.
func ByCase(rep *run.Report) string {
	var buf bytes.Buffer
	table := markdownTable(
		[]string{"Test Case", "Total", "Tier 1", "Tier 2", "Tier 3", "Tier 4", "Steps", "Outcome"}, &buf)

	for _, cr := range rep.TestCases {
		outcome := string(cr.Outcome)
		if cr.Error != "" {
			outcome = fmt.Sprintf("❌ %s", cr.Error)
		}
		_ = table.Append([]string{
			cr.ID,
			fmt.Sprintf("%.1f", cr.Total),
			fmt.Sprintf("%.1f", cr.Tiers.Tier1),
			fmt.Sprintf("%.1f", cr.Tiers.Tier2),
			fmt.Sprintf("%.1f", cr.Tiers.Tier3),
			fmt.Sprintf("%.1f", cr.Tiers.Tier4),
			fmt.Sprintf("%d", cr.Steps),
			outcome,
		})
	}
	_ = table.Render()

	return fmt.Sprintf("## Benchmark Results\n\n%s\nOverall total: %.1f across %d cases (average %.1f/100) in %.1fs\n",
		buf.String(), rep.OverallTotal, len(rep.TestCases), rep.Average, rep.Elapsed)
}

// Calibration renders rubric-calibration results and reports whether
// every document landed in its expected range.
func Calibration(results []scorer.CalibrationResult) (string, bool) {
	var buf bytes.Buffer
	table := markdownTable(
		[]string{"Document", "Total", "Expected Range", "Verdict"}, &buf)

	allPass := true
	for _, r := range results {
		verdict := "pass"
		if !r.Pass {
			verdict = "❌ fail"
			allPass = false
		}
		_ = table.Append([]string{
			r.Name,
			fmt.Sprintf("%.1f", r.Report.Total),
			fmt.Sprintf("%.0f-%.0f", r.Min, r.Max),
			verdict,
		})
	}
	_ = table.Render()

	return fmt.Sprintf("## Rubric Calibration\n\n%s", buf.String()), allPass
}
