// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"pdf-code-comparator/internal/classifier"
	"pdf-code-comparator/internal/config"
	"pdf-code-comparator/internal/confusion"
	"pdf-code-comparator/internal/extractor"
	"pdf-code-comparator/internal/formatters"
	_ "pdf-code-comparator/internal/formatters/csv"
	_ "pdf-code-comparator/internal/formatters/json"
	_ "pdf-code-comparator/internal/formatters/text"
	"pdf-code-comparator/internal/help"
	"pdf-code-comparator/internal/masterlist"
	"pdf-code-comparator/internal/match"
	"pdf-code-comparator/internal/observability"
	"pdf-code-comparator/internal/version"
)

// cliFlags holds command line flag values
type cliFlags struct {
	pdf1       string
	pdf2       string
	masterFile string
	configFile string
	format     string
	outputFile string
	workers    int
	minProb    float64
	verbose    bool
	debug      bool
	noColor    bool
	quiet      bool
}

func main() {
	pdf1 := flag.String("pdf1", "", "First scanned PDF document (required)")
	pdf2 := flag.String("pdf2", "", "Second scanned PDF document (required)")
	masterFile := flag.String("master", "", "Master code list, one code per line or first CSV column (required)")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	outputFormat := flag.String("format", "", "Output format: text, json, csv (default: text)")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	workers := flag.Int("workers", 0, "Concurrent evaluation workers (default: one per CPU)")
	minProb := flag.Float64("min-probability", 0, "Hide results scored below this probability (0-100)")
	verbose := flag.Bool("verbose", false, "Display correction steps and neighbor support per code")
	debug := flag.Bool("debug", false, "Enable debug logging of extraction and matching operations")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	quiet := flag.Bool("quiet", false, "Suppress progress output (useful for scripts and CI/CD)")
	showHelp := flag.Bool("help", false, "Show help information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	flags := cliFlags{
		pdf1:       *pdf1,
		pdf2:       *pdf2,
		masterFile: *masterFile,
		configFile: *configFile,
		format:     *outputFormat,
		outputFile: *outputFile,
		workers:    *workers,
		minProb:    *minProb,
		verbose:    *verbose,
		debug:      *debug,
		noColor:    *noColor,
		quiet:      *quiet,
	}

	// Auto-detect non-interactive environment
	if !isTerminal(os.Stderr) || flags.quiet || os.Getenv("CI") != "" {
		flags.noColor = true
	}

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if *showHelp {
		help.NewSystem(flags.noColor).ShowGeneralHelp()
		os.Exit(0)
	}

	if flags.pdf1 == "" || flags.pdf2 == "" || flags.masterFile == "" {
		fmt.Fprintln(os.Stderr, "Error: --pdf1, --pdf2, and --master are required")
		fmt.Fprintln(os.Stderr, "Use --help for usage information")
		os.Exit(1)
	}

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags cliFlags) error {
	cfg := config.LoadConfigOrDefault(flags.configFile)

	// Command line flags override config file values
	format := cfg.Defaults.Format
	if flags.format != "" {
		format = flags.format
	}
	workers := cfg.Defaults.Workers
	if flags.workers > 0 {
		workers = flags.workers
	}
	minProb := cfg.Defaults.MinProbability
	if flags.minProb > 0 {
		minProb = flags.minProb
	}
	verbose := flags.verbose || cfg.Defaults.Verbose
	debug := flags.debug || cfg.Defaults.Debug
	noColor := flags.noColor || cfg.Defaults.NoColor
	masterPath := flags.masterFile
	if masterPath == "" {
		masterPath = cfg.MasterList.Path
	}

	level := observability.ObservabilityOff
	if debug {
		level = observability.ObservabilityDebug
	}
	observer := observability.NewStandardObserver(level, os.Stderr)

	index, err := masterlist.Load(masterPath)
	if err != nil {
		return fmt.Errorf("loading master list: %w", err)
	}
	progress(flags, "Loaded master list: %d codes\n", index.Len())

	ext, err := extractor.New(cfg.Codes.RegexPattern)
	if err != nil {
		return err
	}
	ext.SetObserver(observer)

	codesA, err := ext.ExtractCodes(flags.pdf1)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", flags.pdf1, err)
	}
	codesB, err := ext.ExtractCodes(flags.pdf2)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", flags.pdf2, err)
	}
	progress(flags, "Extracted %d codes from %s, %d codes from %s\n",
		len(codesA), flags.pdf1, len(codesB), flags.pdf2)

	engine, err := classifier.NewEngine(index, classifier.Config{
		Table:         confusion.NewTable(cfg.Codes.SubstitutionGroups),
		Params:        cfg.Probability,
		VariantCap:    cfg.Codes.VariantCap,
		ControlPrefix: cfg.Codes.ControlPrefix,
		Workers:       workers,
	})
	if err != nil {
		return err
	}
	engine.SetObserver(observer)

	report := match.Report{
		DocumentA:      flags.pdf1,
		DocumentB:      flags.pdf2,
		MasterListSize: index.Len(),
		ResultsA:       engine.CompareDocuments(codesA, codesB),
		ResultsB:       engine.CompareDocuments(codesB, codesA),
	}
	if pages, err := extractor.PageCount(flags.pdf1); err == nil {
		report.PagesA = pages
	}
	if pages, err := extractor.PageCount(flags.pdf2); err == nil {
		report.PagesB = pages
	}

	output, err := formatters.Export(format, report, formatters.FormatterOptions{
		Verbose:        verbose,
		NoColor:        noColor || flags.outputFile != "",
		MinProbability: minProb,
	})
	if err != nil {
		return err
	}

	if flags.outputFile != "" {
		if err := os.WriteFile(flags.outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		progress(flags, "Results written to %s\n", flags.outputFile)
		return nil
	}

	fmt.Print(output)
	return nil
}

// progress prints status output unless quiet mode is active
func progress(flags cliFlags, format string, args ...interface{}) {
	if !flags.quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// isTerminal checks whether f is attached to an interactive terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
