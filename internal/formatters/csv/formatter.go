// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"pdf-code-comparator/internal/formatters"
	"pdf-code-comparator/internal/match"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(report match.Report, options formatters.FormatterOptions) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	headers := []string{"Document", "Code", "Raw Text", "Classification", "Probability", "Corrections", "Page", "Position", "Control Code", "Comment"}
	if options.Verbose {
		headers = append(headers, "Correction Steps", "Neighbor Support")
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, result := range report.AllResults() {
		if err := writer.Write(f.row(result, options)); err != nil {
			return "", fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV: %w", err)
	}
	return builder.String(), nil
}

// row creates a CSV row for a result
func (f *Formatter) row(result match.Result, options formatters.FormatterOptions) []string {
	row := []string{
		result.Code.Document,
		result.Variant.Text,
		result.Code.Text,
		string(result.Classification),
		fmt.Sprintf("%.0f", result.Probability),
		strconv.Itoa(result.Variant.Count()),
		strconv.Itoa(result.Code.Page),
		strconv.Itoa(result.Code.Position),
		strconv.FormatBool(result.ControlCode),
		result.Comment,
	}

	if options.Verbose {
		steps := make([]string, len(result.Variant.Steps))
		for i, step := range result.Variant.Steps {
			steps[i] = step.String()
		}
		supportStr := ""
		if result.Support.Required > 0 {
			supportStr = fmt.Sprintf("%d/%d (%d available)",
				result.Support.Confirmed, result.Support.Required, result.Support.Available)
		}
		row = append(row, strings.Join(steps, "; "), supportStr)
	}
	return row
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
