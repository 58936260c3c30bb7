// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package match

// Report bundles the outcome of one comparison run for the reporting layer.
// ResultsA holds document A's codes classified against B, ResultsB the
// reverse direction.
type Report struct {
	DocumentA      string
	DocumentB      string
	PagesA         int
	PagesB         int
	MasterListSize int
	ResultsA       []Result
	ResultsB       []Result
}

// AllResults returns both directions concatenated, A first.
func (r Report) AllResults() []Result {
	all := make([]Result, 0, len(r.ResultsA)+len(r.ResultsB))
	all = append(all, r.ResultsA...)
	all = append(all, r.ResultsB...)
	return all
}

// SortPriority orders results for display: control codes first, then
// unmatched and single-document findings needing attention, then correction
// matches, with direct matches last.
func (res Result) SortPriority() int {
	if res.ControlCode {
		return 0
	}
	switch res.Classification {
	case Unmatched, SingleDocumentOnly:
		return 1
	case CorrectionMatch:
		return 2
	default:
		return 3
	}
}
