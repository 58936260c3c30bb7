// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extractor reads scanned PDF documents and produces the ordered
// code sequence the matching engine consumes. Text comes from the PDF text
// layer via row-based extraction; documents are validated with pdfcpu before
// any text is read.
package extractor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"pdf-code-comparator/internal/match"
	"pdf-code-comparator/internal/observability"
)

// DefaultCodePattern matches the alphanumeric code shape used on the scanned
// forms. Configurable per deployment via the Codes section of the config.
const DefaultCodePattern = `[A-Z0-9]{3,7}`

// neighborWindow is how many surrounding codes each RawCode carries for
// context validation, nearest first in both directions.
const neighborWindow = 6

// maxPages bounds per-document processing time on very large scans.
const maxPages = 200

// Extractor turns a PDF file into an ordered sequence of RawCode records.
type Extractor struct {
	pattern   *regexp.Regexp
	pdfConfig *model.Configuration
	observer  *observability.StandardObserver
}

// New creates an extractor for the given code pattern. The pattern is
// anchored on word boundaries so partial tokens inside longer words are
// not picked up.
func New(pattern string) (*Extractor, error) {
	if pattern == "" {
		pattern = DefaultCodePattern
	}
	re, err := regexp.Compile(`\b` + pattern + `\b`)
	if err != nil {
		return nil, fmt.Errorf("invalid code pattern %q: %w", pattern, err)
	}
	return &Extractor{
		pattern:   re,
		pdfConfig: model.NewDefaultConfiguration(),
	}, nil
}

// SetObserver sets the observability component for the extractor.
func (e *Extractor) SetObserver(observer *observability.StandardObserver) {
	e.observer = observer
}

// ExtractCodes validates the PDF, extracts its text layer page by page, and
// returns every code token in reading order with page, position, and
// neighbor linkage attached.
func (e *Extractor) ExtractCodes(path string) ([]match.RawCode, error) {
	var finishTiming func(bool, map[string]interface{})
	if e.observer != nil {
		finishTiming = e.observer.StartTiming("extractor", "extract_codes", path)
	}

	if err := e.validate(path); err != nil {
		if finishTiming != nil {
			finishTiming(false, map[string]interface{}{"error": err.Error()})
		}
		return nil, err
	}

	pages, err := e.extractPages(path)
	if err != nil {
		if finishTiming != nil {
			finishTiming(false, map[string]interface{}{"error": err.Error()})
		}
		return nil, err
	}

	document := filepath.Base(path)
	codes := e.tokenize(document, pages)
	linkNeighbors(codes)

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"pages": len(pages),
			"codes": len(codes),
		})
	}
	return codes, nil
}

// validate checks that the file exists and is a structurally valid PDF.
func (e *Extractor) validate(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err := api.ValidateFile(path, e.pdfConfig); err != nil {
		return fmt.Errorf("invalid PDF file %s: %w", path, err)
	}
	return nil
}

// extractPages returns the text of each page, in page order. Pages that fail
// extraction are skipped with a log entry rather than failing the document.
func (e *Extractor) extractPages(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	if pageCount > maxPages {
		pageCount = maxPages
	}

	pages := make([]string, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := extractPageText(p)
		if err != nil {
			e.observer.LogOperation(observability.StandardObservabilityData{
				Component: "extractor",
				Operation: "page_extraction",
				Target:    path,
				Success:   false,
				Error:     err.Error(),
				Metadata:  map[string]interface{}{"page": i},
			})
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// tokenize scans each page's lines for code tokens and records them in
// reading order. Position is a per-document sequence number usable for
// restoring report order.
func (e *Extractor) tokenize(document string, pages []string) []match.RawCode {
	var codes []match.RawCode
	position := 0
	for pageIdx, pageText := range pages {
		for _, line := range strings.Split(pageText, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			for _, token := range e.pattern.FindAllString(strings.ToUpper(line), -1) {
				codes = append(codes, match.RawCode{
					Text:     token,
					Document: document,
					Page:     pageIdx + 1,
					Position: position,
				})
				position++
			}
		}
	}
	return codes
}

// linkNeighbors fills each code's neighbor sequence from the surrounding
// codes in document order, nearest first, alternating before and after.
func linkNeighbors(codes []match.RawCode) {
	for i := range codes {
		neighbors := make([]string, 0, neighborWindow)
		for dist := 1; len(neighbors) < neighborWindow; dist++ {
			prev, next := i-dist, i+dist
			if prev < 0 && next >= len(codes) {
				break
			}
			if prev >= 0 {
				neighbors = append(neighbors, codes[prev].Text)
			}
			if next < len(codes) && len(neighbors) < neighborWindow {
				neighbors = append(neighbors, codes[next].Text)
			}
		}
		codes[i].Neighbors = neighbors
	}
}

// extractPageText extracts a page's text using row-based positioning, which
// preserves the spacing the tokenizer relies on. Falls back to plain text
// extraction when row data is unavailable.
func extractPageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}

	sortedRows := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sortedRows = append(sortedRows, row)
		}
	}
	sort.Slice(sortedRows, func(i, j int) bool {
		return averageY(sortedRows[i].Content) < averageY(sortedRows[j].Content)
	})

	var buf bytes.Buffer
	for _, row := range sortedRows {
		rowText := reconstructRowText(row.Content)
		if strings.TrimSpace(rowText) != "" {
			buf.WriteString(rowText)
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}

func averageY(elements []pdf.Text) float64 {
	if len(elements) == 0 {
		return 0
	}
	var total float64
	for _, element := range elements {
		total += element.Y
	}
	return total / float64(len(elements))
}

// reconstructRowText joins a row's text elements left to right, inserting a
// space wherever the horizontal gap exceeds 20% of the font size.
func reconstructRowText(elements []pdf.Text) string {
	if len(elements) == 0 {
		return ""
	}

	sorted := make([]pdf.Text, len(elements))
	copy(sorted, elements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var buf bytes.Buffer
	for i, element := range sorted {
		buf.WriteString(element.S)
		if i < len(sorted)-1 {
			gap := sorted[i+1].X - (element.X + element.W)
			fontSize := element.FontSize
			if fontSize <= 0 {
				fontSize = 12
			}
			if gap > fontSize*0.2 {
				buf.WriteString(" ")
			}
		}
	}
	return buf.String()
}

// PageCount reports the page count of a PDF without extracting text. Used
// for pre-flight reporting before a comparison run.
func PageCount(path string) (int, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF context: %w", err)
	}
	return ctx.PageCount, nil
}
