// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractor

import (
	"reflect"
	"testing"

	"pdf-code-comparator/internal/match"
)

func TestNew_InvalidPattern(t *testing.T) {
	if _, err := New("["); err == nil {
		t.Error("invalid regex pattern must be rejected")
	}
}

func TestNew_EmptyPatternUsesDefault(t *testing.T) {
	e, err := New("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.pattern.MatchString("B8A") {
		t.Error("default pattern should match a 3-character code")
	}
	if e.pattern.MatchString("AB") {
		t.Error("default pattern should not match 2-character tokens")
	}
}

func TestTokenize_ReadingOrder(t *testing.T) {
	e, err := New("")
	if err != nil {
		t.Fatal(err)
	}

	pages := []string{
		"Identifikationsnummern Lieferschein\nNr 1: B8A\nNr 2: I46\n",
		"Nr 3: XY7\n",
	}
	codes := e.tokenize("a.pdf", pages)

	var texts []string
	for _, c := range codes {
		texts = append(texts, c.Text)
	}
	// Words longer than the pattern ceiling and tokens shorter than its
	// floor never match; only the codes survive.
	want := []string{"B8A", "I46", "XY7"}
	if !reflect.DeepEqual(texts, want) {
		t.Fatalf("tokens = %v, want %v", texts, want)
	}

	if codes[0].Page != 1 || codes[2].Page != 2 {
		t.Error("page numbers must follow the source page")
	}
	for i, c := range codes {
		if c.Position != i {
			t.Errorf("code %d has position %d", i, c.Position)
		}
		if c.Document != "a.pdf" {
			t.Errorf("code %d has document %q", i, c.Document)
		}
	}
}

func TestTokenize_Uppercases(t *testing.T) {
	e, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	codes := e.tokenize("a.pdf", []string{"b8a\n"})
	if len(codes) != 1 || codes[0].Text != "B8A" {
		t.Errorf("lines must be uppercased before tokenizing, got %v", codes)
	}
}

func TestLinkNeighbors_NearestFirstAlternating(t *testing.T) {
	codes := []match.RawCode{
		{Text: "AAA"}, {Text: "BBB"}, {Text: "CCC"}, {Text: "DDD"}, {Text: "EEE"},
	}
	linkNeighbors(codes)

	want := []string{"BBB", "DDD", "AAA", "EEE"}
	if !reflect.DeepEqual(codes[2].Neighbors, want) {
		t.Errorf("CCC neighbors = %v, want %v", codes[2].Neighbors, want)
	}
}

func TestLinkNeighbors_DocumentBoundary(t *testing.T) {
	codes := []match.RawCode{
		{Text: "AAA"}, {Text: "BBB"}, {Text: "CCC"},
	}
	linkNeighbors(codes)

	if want := []string{"BBB", "CCC"}; !reflect.DeepEqual(codes[0].Neighbors, want) {
		t.Errorf("first code neighbors = %v, want %v", codes[0].Neighbors, want)
	}
	if want := []string{"CCC", "AAA"}; !reflect.DeepEqual(codes[1].Neighbors, want) {
		t.Errorf("middle code neighbors = %v, want %v", codes[1].Neighbors, want)
	}
}

func TestLinkNeighbors_WindowCap(t *testing.T) {
	codes := make([]match.RawCode, 20)
	for i := range codes {
		codes[i].Text = "AAA"
	}
	linkNeighbors(codes)

	for i, c := range codes {
		if len(c.Neighbors) > neighborWindow {
			t.Errorf("code %d has %d neighbors, cap is %d", i, len(c.Neighbors), neighborWindow)
		}
	}
	if len(codes[10].Neighbors) != neighborWindow {
		t.Errorf("interior code should carry the full window, got %d", len(codes[10].Neighbors))
	}
}

func TestLinkNeighbors_SingleCode(t *testing.T) {
	codes := []match.RawCode{{Text: "AAA"}}
	linkNeighbors(codes)
	if len(codes[0].Neighbors) != 0 {
		t.Errorf("lone code has no neighbors, got %v", codes[0].Neighbors)
	}
}

func TestValidate_MissingFile(t *testing.T) {
	e, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.ExtractCodes("/nonexistent/file.pdf"); err == nil {
		t.Error("missing file must be an error")
	}
}
