// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"strings"
	"testing"

	"pdf-code-comparator/internal/formatters"
	"pdf-code-comparator/internal/match"
)

func sampleReport() match.Report {
	return match.Report{
		DocumentA:      "a.pdf",
		DocumentB:      "b.pdf",
		PagesA:         2,
		PagesB:         2,
		MasterListSize: 100,
		ResultsA: []match.Result{
			{
				Code:           match.RawCode{Text: "A46", Document: "a.pdf", Page: 1, Position: 0},
				Classification: match.DirectMatch,
				Variant:        match.CorrectionVariant{Text: "A46"},
				Probability:    95,
				Support:        match.ContextSupport{Confirmed: 1, Required: 1, Available: 1},
				Comment:        "direct match, 1 of 1 neighbors confirmed",
			},
			{
				Code:           match.RawCode{Text: "I46", Document: "a.pdf", Page: 1, Position: 1},
				Classification: match.DirectMatch,
				Variant:        match.CorrectionVariant{Text: "I46"},
				Probability:    95,
				Support:        match.ContextSupport{Confirmed: 1, Required: 1, Available: 1},
				Comment:        "direct match, 1 of 1 neighbors confirmed, control code",
				ControlCode:    true,
			},
			{
				Code:           match.RawCode{Text: "88A", Document: "a.pdf", Page: 2, Position: 2},
				Classification: match.CorrectionMatch,
				Variant: match.CorrectionVariant{
					Text:  "B8A",
					Steps: []match.CorrectionStep{{Kind: match.StepSubstitution, Position: 0, From: "8", To: "B"}},
				},
				Probability: 70,
				Support:     match.ContextSupport{Confirmed: 2, Required: 3, Available: 3},
				Comment:     "correction match, 1 correction (8→B at position 0), 2 of 3 neighbors confirmed",
			},
			{
				Code:           match.RawCode{Text: "QQQ", Document: "a.pdf", Page: 2, Position: 3},
				Classification: match.Unmatched,
				Variant:        match.CorrectionVariant{Text: "QQQ"},
				Probability:    0,
				Comment:        "no master list match within 1 variants",
			},
		},
		ResultsB: []match.Result{
			{
				Code:           match.RawCode{Text: "ZZ9", Document: "b.pdf", Page: 1, Position: 0},
				Classification: match.SingleDocumentOnly,
				Variant:        match.CorrectionVariant{Text: "ZZ9"},
				Probability:    40,
				Comment:        "found in master list, not confirmed in sibling document",
			},
		},
	}
}

func TestFormat_ContainsAllResults(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(sampleReport(), formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"A46", "I46", "B8A", "QQQ", "ZZ9"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing code %s", want)
		}
	}
	for _, want := range []string{"DIRECT_MATCH", "CORRECTION_MATCH", "SINGLE_DOCUMENT_ONLY", "UNMATCHED"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing classification %s", want)
		}
	}
}

func TestFormat_ControlCodesFirst(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(sampleReport(), formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	control := strings.Index(out, "I46")
	unmatched := strings.Index(out, "QQQ")
	corrected := strings.Index(out, "B8A")
	direct := strings.Index(out, "A46")

	if control == -1 || unmatched == -1 || corrected == -1 || direct == -1 {
		t.Fatal("expected all codes in output")
	}
	if !(control < unmatched && unmatched < corrected && corrected < direct) {
		t.Errorf("display order must be control, unmatched, corrected, direct; got offsets %d %d %d %d",
			control, unmatched, corrected, direct)
	}
}

func TestFormat_Summary(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(sampleReport(), formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "2 direct, 1 corrected, 1 single-document, 1 unmatched, 1 control codes") {
		t.Errorf("summary line missing or wrong:\n%s", out)
	}
}

func TestFormat_VerboseShowsSteps(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(sampleReport(), formatters.FormatterOptions{NoColor: true, Verbose: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "correction: 8→B at position 0") {
		t.Error("verbose output should list correction steps")
	}
	if !strings.Contains(out, "neighbor support: 2 confirmed of 3 required") {
		t.Error("verbose output should list neighbor support")
	}
	if !strings.Contains(out, `raw text: "88A"`) {
		t.Error("verbose output should show the raw OCR text")
	}
}

func TestFormat_EmptyDirection(t *testing.T) {
	f := NewFormatter()
	report := match.Report{DocumentA: "a.pdf", DocumentB: "b.pdf"}
	out, err := f.Format(report, formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No codes found.") {
		t.Error("empty directions should say so")
	}
}
