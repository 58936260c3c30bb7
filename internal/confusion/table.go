// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package confusion holds the static table of visually confusable character
// groups that drives correction variant generation. The table is an explicit
// read-only value passed into the engine, never ambient state, so tests can
// run with synthetic tables and concurrent evaluation needs no locks.
package confusion

import "strings"

// Table maps a character to the alternatives it may be misread as.
// Substitutions are bidirectional: every member of a group maps to all others.
type Table map[rune][]rune

// DefaultGroups are the confusable groups observed in scanned code sheets.
var DefaultGroups = []string{"B8", "I1L", "0O", "5S", "6G", "2Z"}

// NewTable builds a bidirectional substitution table from character groups.
// Each group is a string of mutually confusable characters. Lowercase input
// is folded to uppercase; duplicate pairs collapse.
func NewTable(groups []string) Table {
	t := make(Table)
	for _, group := range groups {
		members := []rune(strings.ToUpper(group))
		for _, from := range members {
			for _, to := range members {
				if from == to {
					continue
				}
				if !t.has(from, to) {
					t[from] = append(t[from], to)
				}
			}
		}
	}
	return t
}

// Default returns the table built from DefaultGroups.
func Default() Table {
	return NewTable(DefaultGroups)
}

// Alternatives returns the confusable replacements for c, or nil.
func (t Table) Alternatives(c rune) []rune {
	return t[c]
}

// Confusable reports whether from may be misread as to.
func (t Table) Confusable(from, to rune) bool {
	return t.has(from, to)
}

func (t Table) has(from, to rune) bool {
	for _, r := range t[from] {
		if r == to {
			return true
		}
	}
	return false
}
