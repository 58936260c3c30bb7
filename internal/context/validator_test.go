// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"testing"

	"pdf-code-comparator/internal/confusion"
	"pdf-code-comparator/internal/masterlist"
	"pdf-code-comparator/internal/variants"
)

func newValidator(codes ...string) *Validator {
	index := masterlist.NewIndex(codes)
	generator := variants.NewGenerator(confusion.Default(), 0)
	return NewValidator(index, generator)
}

func TestSupport_FullConfirmation(t *testing.T) {
	v := newValidator("AAA", "BBB", "CCC")
	support := v.Support([]string{"AAA", "BBB", "CCC"}, 3)

	if support.Confirmed != 3 || support.Available != 3 || support.Required != 3 {
		t.Errorf("unexpected support %+v", support)
	}
	if support.BoundaryReduced {
		t.Error("full neighbor set must not be boundary-reduced")
	}
	if support.Ratio() != 1.0 {
		t.Errorf("ratio = %g, want 1.0", support.Ratio())
	}
}

func TestSupport_PartialConfirmation(t *testing.T) {
	v := newValidator("AAA", "BBB")
	support := v.Support([]string{"AAA", "BBB", "XYZ"}, 3)

	if support.Confirmed != 2 {
		t.Errorf("confirmed = %d, want 2", support.Confirmed)
	}
	if support.Available != 3 {
		t.Errorf("available = %d, want 3", support.Available)
	}
}

func TestSupport_OnlyNearestRequired(t *testing.T) {
	// The fourth neighbor is in the master list but beyond the required
	// three, so it contributes nothing.
	v := newValidator("DDD")
	support := v.Support([]string{"XXX", "YYY", "ZZZ", "DDD"}, 3)

	if support.Confirmed != 0 {
		t.Errorf("confirmed = %d, want 0: only the nearest 3 neighbors count", support.Confirmed)
	}
	if support.Available != 3 {
		t.Errorf("available = %d, want 3", support.Available)
	}
}

func TestSupport_BoundaryReduced(t *testing.T) {
	v := newValidator("AAA")
	support := v.Support([]string{"AAA"}, 3)

	if !support.BoundaryReduced {
		t.Error("fewer neighbors than required must flag boundary-reduced")
	}
	if support.Ratio() != 1.0 {
		t.Errorf("ratio over available neighbors = %g, want 1.0", support.Ratio())
	}
	if support.EvidenceFraction() != 1.0/3.0 {
		t.Errorf("evidence fraction = %g, want 1/3", support.EvidenceFraction())
	}
}

func TestSupport_DanglingNeighborsSkipped(t *testing.T) {
	v := newValidator("AAA")
	support := v.Support([]string{"", "   ", "AAA"}, 1)

	if support.Confirmed != 1 || support.Available != 1 {
		t.Errorf("blank neighbors should be skipped, got %+v", support)
	}
	if support.BoundaryReduced {
		t.Error("one usable neighbor satisfies required=1")
	}
}

func TestSupport_AllDangling(t *testing.T) {
	v := newValidator("AAA")
	support := v.Support([]string{"", ""}, 3)

	if support.Available != 0 || support.Confirmed != 0 {
		t.Errorf("unexpected support %+v", support)
	}
	if !support.BoundaryReduced {
		t.Error("no usable neighbors is the extreme boundary-reduced case")
	}
	if support.Ratio() != 0 {
		t.Errorf("ratio with no neighbors = %g, want 0", support.Ratio())
	}
}

func TestSupport_NoNeighbors(t *testing.T) {
	v := newValidator("AAA")
	support := v.Support(nil, 1)
	if !support.BoundaryReduced || support.Ratio() != 0 {
		t.Errorf("nil neighbor list should be boundary-reduced with zero ratio, got %+v", support)
	}
}

func TestResolves_WithCorrection(t *testing.T) {
	v := newValidator("B8A")

	cases := []struct {
		text string
		want bool
	}{
		{"B8A", true},
		{"88A", true}, // one substitution away
		{"b8a.", true},
		{"XYZ", false},
	}
	for _, tc := range cases {
		if got := v.Resolves(tc.text); got != tc.want {
			t.Errorf("Resolves(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
