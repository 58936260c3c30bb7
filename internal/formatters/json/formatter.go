// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"pdf-code-comparator/internal/formatters"
	"pdf-code-comparator/internal/match"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Structured JSON output for programmatic consumption"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

// resultRecord is the wire shape of a single classified code
type resultRecord struct {
	Code            string   `json:"code"`
	RawText         string   `json:"raw_text"`
	Document        string   `json:"document"`
	Page            int      `json:"page"`
	Position        int      `json:"position"`
	Classification  string   `json:"classification"`
	Probability     float64  `json:"probability"`
	CorrectionCount int      `json:"correction_count"`
	Corrections     []string `json:"corrections,omitempty"`
	NeighborSupport *support `json:"neighbor_support,omitempty"`
	ControlCode     bool     `json:"control_code"`
	Comment         string   `json:"comment"`
}

type support struct {
	Confirmed       int     `json:"confirmed"`
	Required        int     `json:"required"`
	Available       int     `json:"available"`
	Ratio           float64 `json:"ratio"`
	BoundaryReduced bool    `json:"boundary_reduced"`
}

type reportRecord struct {
	DocumentA      string         `json:"document_a"`
	DocumentB      string         `json:"document_b"`
	PagesA         int            `json:"pages_a"`
	PagesB         int            `json:"pages_b"`
	MasterListSize int            `json:"master_list_size"`
	ResultsA       []resultRecord `json:"results_a"`
	ResultsB       []resultRecord `json:"results_b"`
}

func (f *Formatter) Format(report match.Report, options formatters.FormatterOptions) (string, error) {
	record := reportRecord{
		DocumentA:      report.DocumentA,
		DocumentB:      report.DocumentB,
		PagesA:         report.PagesA,
		PagesB:         report.PagesB,
		MasterListSize: report.MasterListSize,
		ResultsA:       convertResults(report.ResultsA),
		ResultsB:       convertResults(report.ResultsB),
	}

	jsonData, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting JSON: %w", err)
	}
	return string(jsonData), nil
}

func convertResults(results []match.Result) []resultRecord {
	records := make([]resultRecord, 0, len(results))
	for _, r := range results {
		record := resultRecord{
			Code:            r.Variant.Text,
			RawText:         r.Code.Text,
			Document:        r.Code.Document,
			Page:            r.Code.Page,
			Position:        r.Code.Position,
			Classification:  string(r.Classification),
			Probability:     r.Probability,
			CorrectionCount: r.Variant.Count(),
			ControlCode:     r.ControlCode,
			Comment:         r.Comment,
		}
		for _, step := range r.Variant.Steps {
			record.Corrections = append(record.Corrections, step.String())
		}
		if r.Support.Required > 0 {
			record.NeighborSupport = &support{
				Confirmed:       r.Support.Confirmed,
				Required:        r.Support.Required,
				Available:       r.Support.Available,
				Ratio:           r.Support.Ratio(),
				BoundaryReduced: r.Support.BoundaryReduced,
			}
		}
		records = append(records, record)
	}
	return records
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
