// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/term"

	"namescreen/internal/batch"
	"namescreen/internal/config"
	"namescreen/internal/decision"
	"namescreen/internal/engine"
	"namescreen/internal/extraction"
	"namescreen/internal/langdetect"
	"namescreen/internal/llm"
	"namescreen/internal/observability"
	"namescreen/internal/reader"
	"namescreen/internal/report"
	"namescreen/internal/variants"
	"namescreen/internal/version"

	"namescreen/internal/formatters"
	_ "namescreen/internal/formatters/csv"
	_ "namescreen/internal/formatters/json"
	_ "namescreen/internal/formatters/text"
	_ "namescreen/internal/formatters/yaml"
)

// Exit codes: 0 no match, 1 error, 2 match found. The non-zero match code
// lets CI-style callers gate on screening hits.
const (
	exitNoMatch = 0
	exitError   = 1
	exitMatch   = 2
)

// configFlags holds command line flag values
type configFlags struct {
	format  string
	verbose bool
	debug   bool
	noColor bool
	useLLM  bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format  string
	verbose bool
	debug   bool
	noColor bool
	useLLM  bool
}

// resolveConfiguration resolves final values from config file, profile, and
// command line flags, in ascending precedence.
func resolveConfiguration(cfg *config.Config, activeProfile *config.Profile, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{}

	final.format = "text"
	if cfg != nil && cfg.Defaults.Format != "" {
		final.format = cfg.Defaults.Format
	}
	if activeProfile != nil && activeProfile.Format != "" {
		final.format = activeProfile.Format
	}
	if isFlagSet("format") {
		final.format = flags.format
	}

	if cfg != nil {
		final.verbose = cfg.Defaults.Verbose
		final.debug = cfg.Defaults.Debug
		final.noColor = cfg.Defaults.NoColor
		final.useLLM = cfg.LLM.Enabled
	}
	if activeProfile != nil {
		final.verbose = final.verbose || activeProfile.Verbose
		final.debug = final.debug || activeProfile.Debug
		final.noColor = final.noColor || activeProfile.NoColor
		final.useLLM = final.useLLM || activeProfile.LLM
	}
	if isFlagSet("verbose") {
		final.verbose = flags.verbose
	}
	if isFlagSet("debug") {
		final.debug = flags.debug
	}
	if isFlagSet("no-color") {
		final.noColor = flags.noColor
	}
	if isFlagSet("llm") {
		final.useLLM = flags.useLLM
	}

	return final
}

// isFlagSet checks if a flag was explicitly set on the command line
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func main() {
	filePath := flag.String("file", "", "Path to an adverse media article (.txt, .rtf, or .pdf), or a directory of articles")
	targetName := flag.String("target", "", "Full name of the individual to screen for")
	format := flag.String("format", "text", "Output format: text, json, yaml, or csv")
	outputFile := flag.String("output", "", "Write the report to a file instead of stdout")
	configFile := flag.String("config", "", "Path to a configuration file")
	profileName := flag.String("profile", "", "Configuration profile to apply")
	listProfiles := flag.Bool("list-profiles", false, "List available configuration profiles")
	useLLM := flag.Bool("llm", false, "Review the decision with an LLM (requires ANTHROPIC_API_KEY)")
	verbose := flag.Bool("verbose", false, "Include extraction context in the report")
	debug := flag.Bool("debug", false, "Emit per-operation timing to stderr")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(exitNoMatch)
	}

	cfg := config.LoadConfigOrDefault(*configFile)

	if *listProfiles {
		names := cfg.ListProfiles()
		if len(names) == 0 {
			fmt.Println("No profiles defined.")
			os.Exit(exitNoMatch)
		}
		for _, name := range names {
			p := cfg.Profiles[name]
			fmt.Printf("%-20s %s\n", name, p.Description)
		}
		os.Exit(exitNoMatch)
	}

	var activeProfile *config.Profile
	if *profileName != "" {
		activeProfile = cfg.GetProfile(*profileName)
		if activeProfile == nil {
			fmt.Fprintf(os.Stderr, "Error: unknown profile %q\n", *profileName)
			os.Exit(exitError)
		}
	}

	flags := &configFlags{
		format:  *format,
		verbose: *verbose,
		debug:   *debug,
		noColor: *noColor,
		useLLM:  *useLLM,
	}
	final := resolveConfiguration(cfg, activeProfile, flags)

	if *filePath == "" || *targetName == "" {
		fmt.Fprintln(os.Stderr, "Error: -file and -target are required")
		flag.Usage()
		os.Exit(exitError)
	}

	obsLevel := observability.LevelOff
	if final.debug {
		obsLevel = observability.LevelDebug
	}
	observer := observability.NewObserver(obsLevel, os.Stderr)

	reports, failed, err := run(final, cfg, observer, *filePath, *targetName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}

	// Suppress colors when writing to a file or a pipe.
	noColorOut := final.noColor || *outputFile != "" || !isTerminal(os.Stdout)
	options := formatters.FormatterOptions{
		Verbose: final.verbose,
		NoColor: noColorOut,
	}
	sections := make([]string, len(reports))
	for i, rep := range reports {
		section, err := formatters.Export(final.format, rep, options)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitError)
		}
		sections[i] = section
	}
	output := strings.Join(sections, "\n")

	if *outputFile != "" {
		if err := os.WriteFile(filepath.Clean(*outputFile), []byte(output+"\n"), 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(exitError)
		}
	} else {
		fmt.Println(output)
	}

	os.Exit(exitCode(reports, failed))
}

// exitCode maps the screening outcome to a process exit code. A match
// anywhere wins; otherwise any file that failed to screen is an error, so a
// directory of unreadable articles is never mistaken for a clean no-match.
func exitCode(reports []*report.Report, failed int) int {
	for _, rep := range reports {
		if rep.MatchResult == string(decision.VerdictMatch) {
			return exitMatch
		}
	}
	if failed > 0 {
		return exitError
	}
	return exitNoMatch
}

// run screens a single article, or every supported article under a directory.
// The second return value is the number of articles that failed to screen in
// directory mode; those failures do not abort the batch but must surface in
// the exit code.
func run(final *finalConfiguration, cfg *config.Config, observer *observability.Observer, inputPath, targetName string) ([]*report.Report, int, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, 0, fmt.Errorf("error accessing input path: %w", err)
	}

	if !info.IsDir() {
		rep, err := screen(final, cfg, observer, inputPath, targetName)
		if err != nil {
			return nil, 0, err
		}
		return []*report.Report{rep}, 0, nil
	}

	paths, err := articleFiles(inputPath)
	if err != nil {
		return nil, 0, err
	}
	if len(paths) == 0 {
		return nil, 0, fmt.Errorf("no supported articles (.txt, .rtf, .pdf) found in %s", inputPath)
	}

	processor := batch.NewProcessor(observer)
	var progress batch.ProgressCallback
	if isTerminal(os.Stderr) {
		progress = func(completed, total int, currentFile string) {
			fmt.Fprintf(os.Stderr, "\rScreening %d/%d: %s", completed, total, filepath.Base(currentFile))
			if completed == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}
	reports, stats, err := processor.Screen(paths, func(path string) (*report.Report, error) {
		return screen(final, cfg, observer, path, targetName)
	}, progress)
	if err != nil {
		return nil, 0, err
	}
	if stats.FailedFiles > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d of %d articles failed to screen\n", stats.FailedFiles, stats.TotalFiles)
	}
	return reports, stats.FailedFiles, nil
}

func articleFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".text", ".md", ".rtf", ".pdf":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking input directory: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// screen runs the full pipeline for one article/target pair.
func screen(final *finalConfiguration, cfg *config.Config, observer *observability.Observer, filePath, targetName string) (*report.Report, error) {
	doc, err := reader.New(observer).Read(filePath)
	if err != nil {
		return nil, err
	}

	lang := langdetect.Detect(doc.Text)
	candidates := extraction.NewExtractor(observer).Extract(doc.Text, lang)

	tables, err := loadTables(cfg)
	if err != nil {
		return nil, err
	}
	eng := engine.New(engine.Options{
		Tables:     tables,
		Honorifics: cfg.Engine.Honorifics,
		Observer:   observer,
	})

	var d decision.MatchDecision
	if final.useLLM {
		caller, err := llm.NewAnthropicCallerFromEnv(cfg.LLM.Model)
		if err != nil {
			return nil, err
		}
		matcher := llm.NewMatcher(caller, eng, observer, cfg.LLM.CacheDir)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		d, err = matcher.Match(ctx, targetName, doc.Text, langdetect.Code(lang), candidates)
		if err != nil {
			return nil, err
		}
	} else {
		d, err = eng.MatchCandidates(targetName, candidates)
		if err != nil {
			return nil, err
		}
	}

	return report.Build(doc.Path, langdetect.Code(lang), doc.PageCount, d), nil
}

func loadTables(cfg *config.Config) (*variants.Tables, error) {
	if strings.TrimSpace(cfg.Engine.TablesFile) == "" {
		return nil, nil
	}
	return variants.LoadTablesFile(cfg.Engine.TablesFile)
}
