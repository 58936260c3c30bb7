// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"pdf-code-comparator/internal/formatters"
	"pdf-code-comparator/internal/match"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"dark_green":   color.New(color.FgGreen),
			"light_green":  color.New(color.FgHiGreen),
			"dark_yellow":  color.New(color.FgYellow),
			"light_yellow": color.New(color.FgHiYellow),
			"orange":       color.New(color.FgHiRed),
			"red":          color.New(color.FgRed),
			"gray":         color.New(color.FgHiBlack),
			"cyan":         color.New(color.FgCyan),
			"magenta":      color.New(color.FgMagenta),
			"white":        color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with probability color tiers"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(report match.Report, options formatters.FormatterOptions) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	var builder strings.Builder

	f.appendRunHeader(&builder, report, options)

	f.appendSection(&builder, fmt.Sprintf("%s vs %s", report.DocumentA, report.DocumentB), report.ResultsA, options)
	f.appendSection(&builder, fmt.Sprintf("%s vs %s", report.DocumentB, report.DocumentA), report.ResultsB, options)

	f.appendSummary(&builder, report, options)

	return builder.String(), nil
}

// appendRunHeader writes the run metadata block
func (f *Formatter) appendRunHeader(builder *strings.Builder, report match.Report, options formatters.FormatterOptions) {
	header := fmt.Sprintf("Code comparison: %s (%d pages) <-> %s (%d pages), master list %d codes\n\n",
		report.DocumentA, report.PagesA, report.DocumentB, report.PagesB, report.MasterListSize)
	if !options.NoColor {
		header = f.colors["white"].Sprint(header)
	}
	builder.WriteString(header)
}

// appendSection writes one comparison direction as an aligned table, sorted
// by display priority: control codes first, findings needing attention next,
// direct matches last. Within a group the weakest probabilities surface
// earlier.
func (f *Formatter) appendSection(builder *strings.Builder, title string, results []match.Result, options formatters.FormatterOptions) {
	titleStr := fmt.Sprintf("=== %s ===\n", title)
	if !options.NoColor {
		titleStr = f.colors["white"].Sprintf("=== %s ===\n", title)
	}
	builder.WriteString(titleStr)

	if len(results) == 0 {
		builder.WriteString("No codes found.\n\n")
		return
	}

	sorted := make([]match.Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i].SortPriority(), sorted[j].SortPriority()
		if pi != pj {
			return pi < pj
		}
		if sorted[i].Probability != sorted[j].Probability {
			return sorted[i].Probability < sorted[j].Probability
		}
		return sorted[i].Code.Position < sorted[j].Code.Position
	})

	headerStr := fmt.Sprintf("%-10s %-22s %-7s %-6s %s\n", "CODE", "STATUS", "PROB%", "PAGE", "DETAILS")
	if !options.NoColor {
		headerStr = f.colors["white"].Sprintf("%-10s %-22s %-7s %-6s %s\n", "CODE", "STATUS", "PROB%", "PAGE", "DETAILS")
	}
	builder.WriteString(headerStr)
	builder.WriteString(strings.Repeat("-", 70) + "\n")

	for _, result := range sorted {
		f.appendResultLine(builder, result, options)
		if options.Verbose {
			f.appendDetails(builder, result, options)
		}
	}
	builder.WriteString("\n")
}

// appendResultLine writes a single aligned result row
func (f *Formatter) appendResultLine(builder *strings.Builder, result match.Result, options formatters.FormatterOptions) {
	tier := f.tierColor(result)

	codeText := result.Variant.Text
	if codeText == "" {
		codeText = result.Code.Text
	}
	codeStr := fmt.Sprintf("%-10s", codeText)
	if !options.NoColor {
		codeStr = tier.Sprintf("%-10s", codeText)
	}

	statusStr := fmt.Sprintf("%-22s", string(result.Classification))
	if !options.NoColor {
		statusStr = tier.Sprintf("%-22s", string(result.Classification))
	}

	probStr := fmt.Sprintf("%6.0f%%", result.Probability)
	if !options.NoColor {
		probStr = tier.Sprintf("%6.0f%%", result.Probability)
	}

	pageStr := fmt.Sprintf("%-6d", result.Code.Page)
	if !options.NoColor {
		pageStr = f.colors["magenta"].Sprintf("%-6d", result.Code.Page)
	}

	builder.WriteString(fmt.Sprintf("%s %s %s %s %s\n", codeStr, statusStr, probStr, pageStr, result.Comment))
}

// appendDetails writes the verbose block below a result row
func (f *Formatter) appendDetails(builder *strings.Builder, result match.Result, options formatters.FormatterOptions) {
	write := func(line string) {
		if !options.NoColor {
			line = f.colors["cyan"].Sprint(line)
		}
		builder.WriteString(line)
	}

	write(fmt.Sprintf("    raw text: %q (document %s, position %d)\n",
		result.Code.Text, result.Code.Document, result.Code.Position))
	for _, step := range result.Variant.Steps {
		write(fmt.Sprintf("    correction: %s\n", step.String()))
	}
	if result.Support.Required > 0 {
		write(fmt.Sprintf("    neighbor support: %d confirmed of %d required (%d available)\n",
			result.Support.Confirmed, result.Support.Required, result.Support.Available))
	}
}

// appendSummary writes per-classification counts over both directions
func (f *Formatter) appendSummary(builder *strings.Builder, report match.Report, options formatters.FormatterOptions) {
	counts := map[match.Classification]int{}
	control := 0
	for _, result := range report.AllResults() {
		counts[result.Classification]++
		if result.ControlCode {
			control++
		}
	}

	summary := fmt.Sprintf("Summary: %d direct, %d corrected, %d single-document, %d unmatched, %d control codes\n",
		counts[match.DirectMatch], counts[match.CorrectionMatch],
		counts[match.SingleDocumentOnly], counts[match.Unmatched], control)
	if !options.NoColor {
		summary = f.colors["white"].Sprint(summary)
	}
	builder.WriteString(summary)
}

// tierColor maps a result to its display color. Control codes are always
// gray; single-document and unmatched findings are always red; everything
// else follows the probability tiers.
func (f *Formatter) tierColor(result match.Result) *color.Color {
	if result.ControlCode {
		return f.colors["gray"]
	}
	switch result.Classification {
	case match.SingleDocumentOnly, match.Unmatched:
		return f.colors["red"]
	}
	switch {
	case result.Probability >= 100:
		return f.colors["dark_green"]
	case result.Probability >= 90:
		return f.colors["light_green"]
	case result.Probability >= 80:
		return f.colors["dark_yellow"]
	case result.Probability >= 60:
		return f.colors["light_yellow"]
	default:
		return f.colors["orange"]
	}
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
