// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package variants implements the correction candidate generator: given one
// noisy OCR string it enumerates every correction variant reachable through
// confusable-character substitution, spurious-digit removal, and whitespace
// removal, ordered by ascending correction count and capped at a fixed
// ceiling so low-count variants are never starved by combinatorial tails.
package variants

import (
	"regexp"
	"strings"
	"unicode"

	"pdf-code-comparator/internal/confusion"
	"pdf-code-comparator/internal/match"
	"pdf-code-comparator/internal/observability"
)

// DefaultCap bounds the number of variants emitted per input string.
const DefaultCap = 500

// minCodeLength is the shortest string the digit-removal rule may produce.
// A spurious "0" is only stripped from strings longer than 3 characters.
const minCodeLength = 3

var trailingPunct = regexp.MustCompile(`[.,:;)]+$`)

// Normalize applies the shared pre-generation cleanup: uppercase, surrounding
// whitespace trimmed, trailing punctuation runs stripped. Internal whitespace
// survives normalization; its removal is a correction step, not cleanup.
func Normalize(s string) string {
	return strings.ToUpper(trailingPunct.ReplaceAllString(strings.TrimSpace(s), ""))
}

// Generator produces correction variants from a confusion table. Generators
// are read-only after construction and safe for concurrent use.
type Generator struct {
	table    confusion.Table
	cap      int
	observer *observability.StandardObserver
}

// NewGenerator creates a generator over the given confusion table. A cap of
// zero or less falls back to DefaultCap.
func NewGenerator(table confusion.Table, cap int) *Generator {
	if cap <= 0 {
		cap = DefaultCap
	}
	return &Generator{table: table, cap: cap}
}

// SetObserver sets the observability component used for truncation diagnostics.
func (g *Generator) SetObserver(observer *observability.StandardObserver) {
	g.observer = observer
}

// Generate returns the deduplicated, ordered variant set for raw. The first
// entry is always the zero-step variant equal to the normalized input; the
// rest follow in ascending correction count, substitution-only sequences
// before sequences containing digit removal at equal count. Identical result
// strings reachable via different step sequences collapse to the first
// (shortest) sequence. Generation never fails: empty or whitespace-only
// input yields only the trivial variant.
func (g *Generator) Generate(raw string) []match.CorrectionVariant {
	base := Normalize(raw)
	if base == "" {
		return []match.CorrectionVariant{{Text: ""}}
	}

	// Starting forms: the normalized text as-is, and — when it contains
	// internal whitespace — the collapsed text one step away. Every
	// substitution combination applies to both.
	type form struct {
		text  []rune
		steps []match.CorrectionStep
	}
	forms := []form{{text: []rune(base)}}
	if collapsed := removeWhitespace(base); collapsed != base {
		forms = append(forms, form{
			text:  []rune(collapsed),
			steps: []match.CorrectionStep{{Kind: match.StepWhitespaceRemoval}},
		})
	}

	seen := make(map[string]struct{})
	out := make([]match.CorrectionVariant, 0, 16)
	truncated := false

	emit := func(text string, steps []match.CorrectionStep) bool {
		if len(out) >= g.cap {
			truncated = true
			return false
		}
		if _, dup := seen[text]; dup {
			// First emission wins: ascending-count order guarantees it
			// carries the shortest step sequence.
			return true
		}
		seen[text] = struct{}{}
		out = append(out, match.CorrectionVariant{Text: text, Steps: steps})
		return true
	}

	maxSteps := 0
	for _, f := range forms {
		if n := len(g.substitutablePositions(f.text)) + len(f.steps) + 1; n > maxSteps {
			maxSteps = n
		}
	}

	// Level-by-level emission: all variants with exactly c total steps before
	// any variant with c+1. Within a level, plain substitution combinations
	// come before ones ending in digit removal, which settles the classifier
	// tie-break by emission order.
	for c := 0; c <= maxSteps && !truncated; c++ {
		for _, f := range forms {
			subs := c - len(f.steps)
			if subs < 0 {
				continue
			}
			g.enumerateSubstitutions(f.text, subs, func(text []rune, steps []match.CorrectionStep) bool {
				return emit(string(text), concatSteps(f.steps, steps))
			})
		}
		if truncated {
			break
		}
		for _, f := range forms {
			subs := c - len(f.steps) - 1
			if subs < 0 {
				continue
			}
			g.enumerateSubstitutions(f.text, subs, func(text []rune, steps []match.CorrectionStep) bool {
				shortened, removal, ok := removeSpuriousDigit(text)
				if !ok {
					return true
				}
				return emit(string(shortened), append(concatSteps(f.steps, steps), removal))
			})
		}
	}

	if truncated {
		g.observer.LogOperation(observability.StandardObservabilityData{
			Component: "variant_generator",
			Operation: "truncate",
			Target:    base,
			Success:   true,
			Metadata: map[string]interface{}{
				"cap":     g.cap,
				"emitted": len(out),
			},
		})
	}

	return out
}

// substitutablePositions lists the rune indexes with confusion alternatives.
func (g *Generator) substitutablePositions(text []rune) []int {
	var positions []int
	for i, r := range text {
		if len(g.table.Alternatives(r)) > 0 {
			positions = append(positions, i)
		}
	}
	return positions
}

// enumerateSubstitutions walks every combination of exactly k single-position
// substitutions over text, invoking fn with the substituted runes and the
// steps taken. fn returning false stops the walk (cap reached).
func (g *Generator) enumerateSubstitutions(text []rune, k int, fn func([]rune, []match.CorrectionStep) bool) bool {
	if k == 0 {
		return fn(text, nil)
	}
	positions := g.substitutablePositions(text)
	if k > len(positions) {
		return true
	}

	scratch := make([]rune, len(text))
	copy(scratch, text)

	var walk func(posIdx, remaining int, steps []match.CorrectionStep) bool
	walk = func(posIdx, remaining int, steps []match.CorrectionStep) bool {
		if remaining == 0 {
			result := make([]rune, len(scratch))
			copy(result, scratch)
			return fn(result, append([]match.CorrectionStep(nil), steps...))
		}
		for i := posIdx; i <= len(positions)-remaining; i++ {
			pos := positions[i]
			original := scratch[pos]
			for _, alt := range g.table.Alternatives(original) {
				scratch[pos] = alt
				step := match.CorrectionStep{
					Kind:     match.StepSubstitution,
					Position: pos,
					From:     string(original),
					To:       string(alt),
				}
				if !walk(i+1, remaining-1, append(steps, step)) {
					scratch[pos] = original
					return false
				}
			}
			scratch[pos] = original
		}
		return true
	}
	return walk(0, k, nil)
}

// removeSpuriousDigit models the common OCR insertion artifact of a stray
// "0" (or its confusable "O") at the second character position. The rule
// only fires on strings longer than 3 characters whose shortened form keeps
// at least minCodeLength characters.
func removeSpuriousDigit(text []rune) ([]rune, match.CorrectionStep, bool) {
	if len(text) <= minCodeLength {
		return nil, match.CorrectionStep{}, false
	}
	if text[1] != '0' && text[1] != 'O' {
		return nil, match.CorrectionStep{}, false
	}
	if len(text)-1 < minCodeLength {
		return nil, match.CorrectionStep{}, false
	}
	shortened := make([]rune, 0, len(text)-1)
	shortened = append(shortened, text[0])
	shortened = append(shortened, text[2:]...)
	step := match.CorrectionStep{
		Kind:     match.StepDigitRemoval,
		Position: 1,
		From:     string(text[1]),
	}
	return shortened, step, true
}

func removeWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func concatSteps(a, b []match.CorrectionStep) []match.CorrectionStep {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]match.CorrectionStep, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
