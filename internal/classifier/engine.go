// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package classifier orchestrates the matching engine: correction variant
// generation, master-list lookup, context validation, and probability
// calculation, producing one classified result per extracted code.
package classifier

import (
	"fmt"
	"strings"

	"pdf-code-comparator/internal/confusion"
	"pdf-code-comparator/internal/context"
	"pdf-code-comparator/internal/masterlist"
	"pdf-code-comparator/internal/match"
	"pdf-code-comparator/internal/observability"
	"pdf-code-comparator/internal/parallel"
	"pdf-code-comparator/internal/probability"
	"pdf-code-comparator/internal/variants"
)

// Required neighbor support per classification type. A direct match needs a
// single corroborating neighbor; a corrected match needs three, reflecting
// the greater uncertainty being offset.
const (
	directSupportRequired     = 1
	correctionSupportRequired = 3
)

// DefaultControlPrefix marks control codes carrying special display priority.
const DefaultControlPrefix = "I"

// Config holds engine construction parameters. Zero values fall back to the
// reference defaults.
type Config struct {
	Table         confusion.Table
	Params        probability.Params
	VariantCap    int
	ControlPrefix string
	Workers       int
}

// Engine classifies extracted codes against a master list and a sibling
// document. All state is read-only after construction; per-code evaluation
// runs concurrently without locks.
type Engine struct {
	index         *masterlist.Index
	generator     *variants.Generator
	contexts      *context.Validator
	params        probability.Params
	controlPrefix string
	workers       int
	observer      *observability.StandardObserver
}

// NewEngine creates an engine over a loaded master list index. A nil or
// empty index is a precondition failure: the engine refuses to run rather
// than silently classifying everything unmatched.
func NewEngine(index *masterlist.Index, cfg Config) (*Engine, error) {
	if index == nil || index.Len() == 0 {
		return nil, fmt.Errorf("master list index is empty: refusing to classify")
	}

	table := cfg.Table
	if table == nil {
		table = confusion.Default()
	}
	params := cfg.Params
	if params == (probability.Params{}) {
		params = probability.DefaultParams()
	}
	prefix := cfg.ControlPrefix
	if prefix == "" {
		prefix = DefaultControlPrefix
	}

	generator := variants.NewGenerator(table, cfg.VariantCap)

	return &Engine{
		index:         index,
		generator:     generator,
		contexts:      context.NewValidator(index, generator),
		params:        params,
		controlPrefix: strings.ToUpper(prefix),
		workers:       cfg.Workers,
	}, nil
}

// SetObserver sets the observability component for the engine and its
// variant generator.
func (e *Engine) SetObserver(observer *observability.StandardObserver) {
	e.observer = observer
	e.generator.SetObserver(observer)
}

// CompareDocuments classifies every code of doc against the master list and
// the sibling document, returning results in document order. Evaluation fans
// out over the engine's worker pool; ordering is restored afterwards.
func (e *Engine) CompareDocuments(doc, sibling []match.RawCode) []match.Result {
	var finishTiming func(bool, map[string]interface{})
	if e.observer != nil {
		finishTiming = e.observer.StartTiming("classifier", "compare_documents", documentID(doc))
	}

	siblingSet := e.resolvedSet(sibling)
	results := parallel.Map(doc, e.workers, e.observer, func(code match.RawCode) match.Result {
		return e.classify(code, siblingSet)
	})

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"codes":         len(doc),
			"sibling_codes": len(siblingSet),
		})
	}
	return results
}

// resolvedSet maps every raw code of a document to its master-list
// resolution, giving the set used for sibling confirmation. Codes that
// resolve to nothing are omitted.
func (e *Engine) resolvedSet(doc []match.RawCode) map[string]struct{} {
	set := make(map[string]struct{}, len(doc))
	for _, code := range doc {
		for _, variant := range e.generator.Generate(code.Text) {
			if e.index.Contains(variant.Text) {
				set[variant.Text] = struct{}{}
				break
			}
		}
	}
	return set
}

// classify runs the terminal-state machine for one code. Evaluation order:
// direct match first, then the capped correction-variant search, then
// single-document-only, then unmatched.
func (e *Engine) classify(code match.RawCode, sibling map[string]struct{}) match.Result {
	candidates := e.generator.Generate(code.Text)
	zero := candidates[0]

	result := match.Result{
		Code:        code,
		Variant:     zero,
		ControlCode: strings.HasPrefix(zero.Text, e.controlPrefix),
	}

	// Empty or whitespace-only text is malformed input, handled locally as
	// an unmatched outcome.
	if zero.Text == "" {
		result.Classification = match.Unmatched
		result.Probability = e.params.Calculate(match.Unmatched, 0, match.ContextSupport{})
		result.Comment = "empty code text, no match possible"
		return result
	}

	if _, inSibling := sibling[zero.Text]; inSibling && e.index.Contains(zero.Text) {
		result.Classification = match.DirectMatch
		result.Support = e.contexts.Support(code.Neighbors, directSupportRequired)
		result.Probability = e.params.Calculate(match.DirectMatch, 0, result.Support)
		result.Comment = e.comment(result)
		return result
	}

	// Variants arrive ordered by ascending correction count, substitutions
	// before digit removal at equal count, so the first hit is the winner.
	var masterHit *match.CorrectionVariant
	for i := range candidates {
		v := candidates[i]
		if !e.index.Contains(v.Text) {
			continue
		}
		if masterHit == nil {
			masterHit = &candidates[i]
		}
		if _, inSibling := sibling[v.Text]; inSibling && v.Count() > 0 {
			result.Classification = match.CorrectionMatch
			result.Variant = v
			result.ControlCode = strings.HasPrefix(v.Text, e.controlPrefix)
			result.Support = e.contexts.Support(code.Neighbors, correctionSupportRequired)
			result.Probability = e.params.Calculate(match.CorrectionMatch, v.Count(), result.Support)
			result.Comment = e.comment(result)
			return result
		}
	}

	if masterHit != nil {
		result.Classification = match.SingleDocumentOnly
		result.Variant = *masterHit
		result.ControlCode = strings.HasPrefix(masterHit.Text, e.controlPrefix)
		result.Probability = e.params.Calculate(match.SingleDocumentOnly, masterHit.Count(), match.ContextSupport{})
		result.Comment = e.comment(result)
		return result
	}

	result.Classification = match.Unmatched
	result.Probability = e.params.Calculate(match.Unmatched, 0, match.ContextSupport{})
	result.Comment = fmt.Sprintf("no master list match within %d variants", len(candidates))
	return result
}

// comment builds the human-readable explanation attached to each result.
func (e *Engine) comment(r match.Result) string {
	var parts []string

	switch r.Classification {
	case match.DirectMatch:
		parts = append(parts, "direct match")
	case match.CorrectionMatch:
		steps := make([]string, len(r.Variant.Steps))
		for i, s := range r.Variant.Steps {
			steps[i] = s.String()
		}
		noun := "corrections"
		if len(steps) == 1 {
			noun = "correction"
		}
		parts = append(parts, fmt.Sprintf("correction match, %d %s (%s)", len(steps), noun, strings.Join(steps, ", ")))
	case match.SingleDocumentOnly:
		if r.Variant.Count() > 0 {
			parts = append(parts, fmt.Sprintf("found in master list after %d corrections", r.Variant.Count()))
		} else {
			parts = append(parts, "found in master list")
		}
		parts = append(parts, "not confirmed in sibling document")
	}

	if r.Classification == match.DirectMatch || r.Classification == match.CorrectionMatch {
		if r.Support.Available == 0 {
			parts = append(parts, "no neighbors available")
		} else {
			parts = append(parts, fmt.Sprintf("%d of %d neighbors confirmed", r.Support.Confirmed, r.Support.Required))
			if r.Support.BoundaryReduced {
				parts = append(parts, "boundary-reduced context")
			}
		}
	}

	if r.ControlCode {
		parts = append(parts, "control code")
	}

	return strings.Join(parts, ", ")
}

func documentID(doc []match.RawCode) string {
	if len(doc) == 0 {
		return ""
	}
	return doc[0].Document
}
