// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package masterlist provides the immutable index of trusted codes that every
// correction variant is tested against. Membership is exact-string only;
// fuzziness lives entirely in variant generation.
package masterlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Index is a read-only set of valid codes. Loaded once per run, never
// mutated afterwards, safe for concurrent lookups without locking.
type Index struct {
	codes map[string]struct{}
}

// NewIndex builds an index from a slice of codes. Codes are normalized with
// the same trim/uppercase treatment the loader applies.
func NewIndex(codes []string) *Index {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		set[c] = struct{}{}
	}
	return &Index{codes: set}
}

// Contains reports exact membership. O(1) amortized; it runs once per
// correction variant per extracted code.
func (idx *Index) Contains(text string) bool {
	_, ok := idx.codes[text]
	return ok
}

// Len returns the number of distinct codes in the index.
func (idx *Index) Len() int {
	return len(idx.codes)
}

// Load reads a master code list from a file. Plain lists carry one code per
// line; CSV files contribute their first column. Blank lines and lines
// starting with '#' are skipped. An empty result is an error: the engine
// refuses to run without a master list rather than classifying everything
// unmatched.
func Load(path string) (*Index, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error opening master list: %w", err)
	}
	defer f.Close()

	idx, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("error reading master list %s: %w", path, err)
	}
	return idx, nil
}

// Read parses master codes from r. See Load for the accepted format.
func Read(r io.Reader) (*Index, error) {
	var codes []string
	scanner := bufio.NewScanner(r)
	header := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// First CSV column; plain lists have no comma and pass through.
		if i := strings.IndexByte(line, ','); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		// Tolerate a "Code" header row from spreadsheet exports.
		if header && strings.EqualFold(line, "code") {
			header = false
			continue
		}
		header = false
		if line != "" {
			codes = append(codes, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	idx := NewIndex(codes)
	if idx.Len() == 0 {
		return nil, fmt.Errorf("master list is empty")
	}
	return idx, nil
}
