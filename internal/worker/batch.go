package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ekurganov/claimlens/internal/model"
	"github.com/ekurganov/claimlens/internal/util"
)

// Analyzer defines the interface for analyzing one answer text
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) (*model.AnswerReport, error)
}

// AnalyzeJob analyzes the answer stored in one file
type AnalyzeJob struct {
	Path     string
	Analyzer Analyzer
}

// Execute reads the file and runs the analysis. HTML files are
// stripped to visible text first.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &AnalyzeResult{Path: j.Path, Error: fmt.Errorf("read file: %w", err)}
	}

	text := string(data)
	if ext := strings.ToLower(filepath.Ext(j.Path)); ext == ".html" || ext == ".htm" {
		stripped, err := util.StripHTML(text)
		if err != nil {
			return &AnalyzeResult{Path: j.Path, Error: fmt.Errorf("strip html: %w", err)}
		}
		text = stripped
	}

	report, err := j.Analyzer.AnalyzeText(ctx, text)
	if err != nil {
		return &AnalyzeResult{Path: j.Path, Error: err}
	}
	return &AnalyzeResult{Path: j.Path, Report: report}
}

// AnalyzeResult represents the result of one analysis job
type AnalyzeResult struct {
	Path   string
	Report *model.AnswerReport
	Error  error
}

// GetError returns the error from the analysis result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple answer files concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessFiles analyzes the given answer files concurrently
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*AnalyzeResult {
	if len(paths) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start(ctx)

	for _, path := range paths {
		pool.Submit(&AnalyzeJob{
			Path:     path,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessList reads file paths from a list file and analyzes them
func (b *BatchProcessor) ProcessList(ctx context.Context, listPath string) ([]*AnalyzeResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessFiles(ctx, paths), nil
}

// ReadPathsFromFile reads file paths from a file (one per line),
// skipping blanks, comments and duplicates.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
