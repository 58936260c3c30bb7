// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package probability turns a classification, a correction count, and a
// context-support signal into a calibrated percentage. The calculation is a
// pure function over explicit inputs so its monotonicity properties stay
// independently testable; all magnitudes are tunable parameters rather than
// hard-coded constants.
package probability

import "pdf-code-comparator/internal/match"

// Params holds the tunable scoring parameters. The defaults reproduce the
// reference behavior: 40% base for any master-list hit, −10 points per
// correction step, and a context bonus curve per classification type.
type Params struct {
	// Base is the probability for any code found in the master list,
	// directly or via correction.
	Base float64 `yaml:"base"`

	// CorrectionPenalty is subtracted once per correction step in the
	// winning variant.
	CorrectionPenalty float64 `yaml:"correction_penalty"`

	// DirectBonusMax caps the context bonus for direct matches, where a
	// single neighbor is the required evidence.
	DirectBonusMax float64 `yaml:"direct_bonus_max"`

	// CorrectionBonusMax caps the context bonus for correction matches. It
	// is the larger curve: three neighbors are required, offsetting the
	// greater uncertainty of a corrected read.
	CorrectionBonusMax float64 `yaml:"correction_bonus_max"`

	// SingleDocumentProbability is the fixed low-confidence marker assigned
	// to codes confirmed in the master list but absent from the sibling
	// document. It bypasses the formula entirely.
	SingleDocumentProbability float64 `yaml:"single_document_probability"`
}

// DefaultParams returns the reference parameter set.
func DefaultParams() Params {
	return Params{
		Base:                      40,
		CorrectionPenalty:         10,
		DirectBonusMax:            55,
		CorrectionBonusMax:        60,
		SingleDocumentProbability: 40,
	}
}

// Calculate computes the probability in [0,100] for one match outcome.
//
// Monotonic by construction: non-increasing in corrections and
// non-decreasing in support ratio, holding everything else fixed. A
// boundary-reduced support signal scales the bonus down by the fraction of
// required evidence that actually existed, so it always scores at or below a
// full-N signal of the same ratio.
func (p Params) Calculate(classification match.Classification, corrections int, support match.ContextSupport) float64 {
	switch classification {
	case match.Unmatched:
		return 0
	case match.SingleDocumentOnly:
		return clamp(p.SingleDocumentProbability)
	}

	prob := p.Base - float64(corrections)*p.CorrectionPenalty
	if prob < 0 {
		prob = 0
	}

	bonusMax := p.DirectBonusMax
	if classification == match.CorrectionMatch {
		bonusMax = p.CorrectionBonusMax
	}
	bonus := support.Ratio() * bonusMax
	if support.BoundaryReduced {
		bonus *= support.EvidenceFraction()
	}

	return clamp(prob + bonus)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
