// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package context produces the neighbor-corroboration signal: how many of a
// code's nearest neighbors themselves resolve against the master list. The
// signal feeds the probability calculator as a bonus input; it never recurses
// into the neighbors' own probability computation.
package context

import (
	"pdf-code-comparator/internal/masterlist"
	"pdf-code-comparator/internal/match"
	"pdf-code-comparator/internal/variants"
)

// Validator checks neighbor codes against the master list, applying the same
// zero-or-more-correction matching the classifier uses for the codes
// themselves. Read-only after construction, safe for concurrent use.
type Validator struct {
	index     *masterlist.Index
	generator *variants.Generator
}

// NewValidator creates a context validator over the given index and variant
// generator.
func NewValidator(index *masterlist.Index, generator *variants.Generator) *Validator {
	return &Validator{index: index, generator: generator}
}

// Support inspects the nearest `required` neighbors (the neighbor slice is
// ordered nearest-first) and counts how many resolve to a master-list member.
// Blank or dangling neighbor entries are skipped, which — like a document
// boundary — leaves fewer than `required` usable neighbors and flags the
// result boundary-reduced.
func (v *Validator) Support(neighbors []string, required int) match.ContextSupport {
	support := match.ContextSupport{Required: required}
	if required <= 0 {
		return support
	}

	for _, neighbor := range neighbors {
		if support.Available == required {
			break
		}
		if variants.Normalize(neighbor) == "" {
			// Dangling linkage: never fatal, just missing evidence.
			continue
		}
		support.Available++
		if v.Resolves(neighbor) {
			support.Confirmed++
		}
	}

	support.BoundaryReduced = support.Available < required
	return support
}

// Resolves reports whether text reaches a master-list member through zero or
// more corrections.
func (v *Validator) Resolves(text string) bool {
	for _, variant := range v.generator.Generate(text) {
		if v.index.Contains(variant.Text) {
			return true
		}
	}
	return false
}
