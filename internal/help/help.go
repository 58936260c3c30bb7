// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
)

// System renders CLI help output
type System struct {
	noColor bool
	colors  map[string]*color.Color
}

// NewSystem creates a new help system
func NewSystem(noColor bool) *System {
	if noColor {
		color.NoColor = true
	}

	return &System{
		noColor: noColor,
		colors: map[string]*color.Color{
			"title":   color.New(color.FgWhite, color.Bold),
			"header":  color.New(color.FgBlue, color.Bold),
			"example": color.New(color.FgMagenta),
		},
	}
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Println("PDF Code Comparator - OCR Code Matching Tool")
	fmt.Println("============================================")
	fmt.Println()
	h.colors["header"].Println("USAGE:")
	fmt.Println("  pdf-code-comparator --pdf1 <path> --pdf2 <path> --master <path> [options]")
	fmt.Println()

	h.colors["header"].Println("OPTIONS:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --pdf1\t<path>\tFirst scanned PDF document (required)")
	fmt.Fprintln(w, "  --pdf2\t<path>\tSecond scanned PDF document (required)")
	fmt.Fprintln(w, "  --master\t<path>\tMaster code list, one code per line or first CSV column (required)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --format\t<format>\tOutput format: text, json, csv (default: text)")
	fmt.Fprintln(w, "  --output\t<path>\tPath to output file (if not specified, output to stdout)")
	fmt.Fprintln(w, "  --workers\t<n>\tConcurrent evaluation workers (default: one per CPU)")
	fmt.Fprintln(w, "  --min-probability\t<0-100>\tHide results scored below this probability")
	fmt.Fprintln(w, "  --verbose\t\tDisplay correction steps and neighbor support per code")
	fmt.Fprintln(w, "  --debug\t\tEnable debug logging of extraction and matching operations")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --quiet\t\tSuppress progress output (useful for scripts and CI/CD)")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help")
	w.Flush()
	fmt.Println()

	h.colors["header"].Println("OUTPUT:")
	fmt.Println("  Each extracted code is classified as DIRECT_MATCH, CORRECTION_MATCH,")
	fmt.Println("  SINGLE_DOCUMENT_ONLY, or UNMATCHED, with a probability from 0 to 100.")
	fmt.Println("  Common OCR misreads (B/8, I/1/L, 0/O, 5/S, 6/G, 2/Z) are corrected")
	fmt.Println("  automatically when the corrected code appears in the master list.")
	fmt.Println()

	h.colors["header"].Println("EXAMPLES:")
	h.colors["example"].Println("  pdf-code-comparator --pdf1 scan_a.pdf --pdf2 scan_b.pdf --master codes.csv")
	h.colors["example"].Println("  pdf-code-comparator --pdf1 a.pdf --pdf2 b.pdf --master codes.txt --format json --output report.json")
	h.colors["example"].Println("  pdf-code-comparator --pdf1 a.pdf --pdf2 b.pdf --master codes.txt --verbose --workers 8")
}
