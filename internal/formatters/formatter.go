// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"strings"

	"pdf-code-comparator/internal/match"
)

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	Verbose        bool    // Whether to display correction details and neighbor support
	NoColor        bool    // Whether to disable colored output
	MinProbability float64 // Drop results scored below this value (0 keeps everything)
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders a comparison report in the formatter's output format
	Format(report match.Report, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names
func (r *Registry) List() []string {
	var names []string
	for name := range r.formatters {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders a report with the named formatter
func Export(format string, report match.Report, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		availableFormats := List()
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(availableFormats, ", "))
	}
	if options.MinProbability > 0 {
		report.ResultsA = filterByProbability(report.ResultsA, options.MinProbability)
		report.ResultsB = filterByProbability(report.ResultsB, options.MinProbability)
	}
	return formatter.Format(report, options)
}

func filterByProbability(results []match.Result, min float64) []match.Result {
	var kept []match.Result
	for _, result := range results {
		if result.Probability >= min {
			kept = append(kept, result)
		}
	}
	return kept
}
