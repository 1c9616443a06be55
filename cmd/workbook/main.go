// Command workbook converts workbook markdown files into question-bank JSON
// documents the app serves as its default question data.
//
// Usage:
//
//	workbook [-out dir] [-validate] [-watch] file.md [more.md ...]
//
// Multiple files are converted concurrently. Exit code 1 on any read, parse
// or validation failure.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rocklingo/backend/internal/domain/questionbank"
	"github.com/rocklingo/backend/internal/worker"
	"github.com/rocklingo/backend/internal/workbook"
)

type categoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type bankStats struct {
	TotalQuestions      int             `json:"totalQuestions"`
	TotalCategories     int             `json:"totalCategories"`
	QuestionsByCategory []categoryCount `json:"questionsByCategory"`
}

// outputDoc is the converted bank plus conversion metadata.
type outputDoc struct {
	questionbank.QuestionBank
	GeneratedAt string    `json:"generatedAt"`
	SourceFile  string    `json:"sourceFile"`
	Stats       bankStats `json:"stats"`
}

type convertResult struct {
	input  string
	output string
	stats  bankStats
	err    error
}

func main() {
	outDir := flag.String("out", "", "output directory (default: next to each input file)")
	validate := flag.Bool("validate", false, "validate the converted bank and fail on problems")
	watch := flag.Bool("watch", false, "watch input files and reconvert on change")
	flag.Parse()

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: workbook [-out dir] [-validate] [-watch] file.md [more.md ...]")
		os.Exit(1)
	}

	if convertAll(inputs, *outDir, *validate) > 0 {
		os.Exit(1)
	}

	if *watch {
		watchLoop(inputs, *outDir, *validate)
	}
}

// convertAll converts every input through a worker pool and returns the
// number of failures.
func convertAll(inputs []string, outDir string, validate bool) int {
	pool := worker.NewPool[convertResult](4, len(inputs))
	for _, input := range inputs {
		pool.Submit(input, func() convertResult {
			return convert(input, outDir, validate)
		})
	}
	pool.Close()

	failures := 0
	for range inputs {
		res := <-pool.Results()
		if res.Output.err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Output.input, res.Output.err)
			failures++
			continue
		}
		fmt.Printf("%s → %s (%d questions in %d categories)\n",
			res.Output.input, res.Output.output,
			res.Output.stats.TotalQuestions, res.Output.stats.TotalCategories)
		for _, cc := range res.Output.stats.QuestionsByCategory {
			fmt.Printf("  %s: %d\n", cc.Category, cc.Count)
		}
	}
	return failures
}

func convert(input, outDir string, validate bool) convertResult {
	raw, err := os.ReadFile(input)
	if err != nil {
		return convertResult{input: input, err: err}
	}

	bank := workbook.Parse(string(raw))

	if validate {
		if problems := bank.Validate(); len(problems) > 0 {
			return convertResult{input: input, err: fmt.Errorf("validation failed: %s", strings.Join(problems, "; "))}
		}
	}

	stats := bankStats{
		TotalQuestions:  bank.TotalQuestions(),
		TotalCategories: len(bank.Categories),
	}
	for _, cat := range bank.Categories {
		stats.QuestionsByCategory = append(stats.QuestionsByCategory, categoryCount{
			Category: cat.Name,
			Count:    len(cat.Questions),
		})
	}

	doc := outputDoc{
		QuestionBank: *bank,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		SourceFile:   filepath.Base(input),
		Stats:        stats,
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return convertResult{input: input, err: err}
	}

	output := outputPath(input, outDir)
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return convertResult{input: input, err: err}
		}
	}
	if err := os.WriteFile(output, content, 0o644); err != nil {
		return convertResult{input: input, err: err}
	}

	return convertResult{input: input, output: output, stats: stats}
}

func outputPath(input, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".json"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(input), base)
}

// watchLoop polls input file mtimes once a second and reconverts changed
// files until interrupted.
func watchLoop(inputs []string, outDir string, validate bool) {
	fmt.Println("watching for changes...")

	mtimes := make(map[string]time.Time, len(inputs))
	for _, input := range inputs {
		if info, err := os.Stat(input); err == nil {
			mtimes[input] = info.ModTime()
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			return
		case <-ticker.C:
			for _, input := range inputs {
				info, err := os.Stat(input)
				if err != nil {
					continue
				}
				if info.ModTime().After(mtimes[input]) {
					mtimes[input] = info.ModTime()
					fmt.Printf("%s changed, reconverting...\n", input)
					if res := convert(input, outDir, validate); res.err != nil {
						fmt.Fprintf(os.Stderr, "%s: %v\n", input, res.err)
					}
				}
			}
		}
	}
}
