// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package match

import "fmt"

// Classification is the terminal outcome assigned to one extracted code.
type Classification string

const (
	// DirectMatch: the code text matched the master list with zero corrections
	// and was confirmed in the sibling document.
	DirectMatch Classification = "DIRECT_MATCH"

	// CorrectionMatch: the code matched the master list only after one or more
	// correction steps, and was confirmed in the sibling document.
	CorrectionMatch Classification = "CORRECTION_MATCH"

	// SingleDocumentOnly: a variant matched the master list but the code could
	// not be confirmed in the sibling document at all.
	SingleDocumentOnly Classification = "SINGLE_DOCUMENT_ONLY"

	// Unmatched: no variant within the generation cap matched the master list.
	Unmatched Classification = "UNMATCHED"
)

// StepKind identifies one class of correction rule.
type StepKind string

const (
	StepSubstitution      StepKind = "substitution"
	StepDigitRemoval      StepKind = "digit_removal"
	StepWhitespaceRemoval StepKind = "whitespace_removal"
)

// CorrectionStep is one atomic transformation applied to a code string.
// Immutable once generated.
type CorrectionStep struct {
	Kind     StepKind
	Position int    // rune index in the string the step was applied to
	From     string // original character(s); empty for whitespace removal
	To       string // replacement; empty for removal steps
}

// String renders a step the way it appears in result comments, e.g. "8→B at position 1".
func (s CorrectionStep) String() string {
	switch s.Kind {
	case StepSubstitution:
		return fmt.Sprintf("%s→%s at position %d", s.From, s.To, s.Position)
	case StepDigitRemoval:
		return fmt.Sprintf("removed %s at position %d", s.From, s.Position)
	case StepWhitespaceRemoval:
		return "whitespace removed"
	}
	return string(s.Kind)
}

// CorrectionVariant is a candidate string plus the ordered steps that produced
// it from the original text. The zero-step variant always equals the
// normalized original.
type CorrectionVariant struct {
	Text  string
	Steps []CorrectionStep
}

// Count returns the number of correction steps behind this variant.
func (v CorrectionVariant) Count() int { return len(v.Steps) }

// PureSubstitution reports whether every step is a character substitution.
// Whitespace removal does not count against purity: substitution-only
// sequences win classifier tie-breaks over ones containing digit removal.
func (v CorrectionVariant) PureSubstitution() bool {
	for _, s := range v.Steps {
		if s.Kind == StepDigitRemoval {
			return false
		}
	}
	return true
}

// RawCode is one string extracted from one position in one document.
// Created once per extraction and never mutated.
type RawCode struct {
	Text     string
	Document string // source document id
	Page     int
	Position int // extraction order within the document

	// Neighbors holds the texts of nearby codes on the same document, ordered
	// nearest-first and alternating before/after. Relationship only; the
	// neighbor codes themselves are not owned by this record.
	Neighbors []string
}

// ContextSupport is the neighbor-corroboration signal produced by the context
// validator and consumed by the probability calculator.
type ContextSupport struct {
	Confirmed int // neighbors resolved against the master list
	Required  int // neighbors the classification demands (1 direct, 3 correction)
	Available int // neighbors that actually existed near the code

	// BoundaryReduced marks results computed over fewer than Required
	// neighbors (document boundary or dangling linkage). The probability
	// calculator treats these as weaker evidence than a full-N ratio.
	BoundaryReduced bool
}

// Ratio returns the support ratio in [0,1]. Boundary-reduced results are
// computed over however many neighbors existed; the probability calculator
// separately discounts them for the missing evidence.
func (c ContextSupport) Ratio() float64 {
	denom := c.Required
	if c.Available < c.Required {
		denom = c.Available
	}
	if denom <= 0 {
		return 0
	}
	r := float64(c.Confirmed) / float64(denom)
	if r > 1 {
		r = 1
	}
	return r
}

// EvidenceFraction is the share of required neighbors that actually existed.
func (c ContextSupport) EvidenceFraction() float64 {
	if c.Required <= 0 {
		return 0
	}
	f := float64(c.Available) / float64(c.Required)
	if f > 1 {
		f = 1
	}
	return f
}

// Result is the classified outcome for one RawCode. Probability and
// classification are always derived together from the same winning variant.
type Result struct {
	Code           RawCode
	Classification Classification
	Variant        CorrectionVariant // winning variant; zero-step for direct matches
	Probability    float64           // 0–100
	Support        ContextSupport
	Comment        string

	// ControlCode flags codes carrying the designated control prefix. Scoring
	// is identical to ordinary codes; only display priority differs.
	ControlCode bool
}

// CorrectionCount is the number of steps behind the winning variant.
func (r Result) CorrectionCount() int { return r.Variant.Count() }
