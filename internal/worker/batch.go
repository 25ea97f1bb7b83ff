package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/healthlinkai/healthlink/internal/model"
)

// Analyzer runs a single symptom report through the triage rules.
type Analyzer interface {
	Analyze(text string, selected []string) (*model.Assessment, error)
}

// ReportRequest is one batched symptom report.
type ReportRequest struct {
	Text     string   `json:"text"`
	Selected []string `json:"selected,omitempty"`
}

// TriageJob analyzes one report request.
type TriageJob struct {
	Request  ReportRequest
	Analyzer Analyzer
}

// Execute runs the analysis and wraps the outcome.
func (j *TriageJob) Execute(ctx context.Context) Result {
	assessment, err := j.Analyzer.Analyze(j.Request.Text, j.Request.Selected)
	return &TriageResult{
		Request:    j.Request,
		Assessment: assessment,
		Error:      err,
	}
}

// TriageResult is the outcome of a single batched analysis.
type TriageResult struct {
	Request    ReportRequest
	Assessment *model.Assessment
	Error      error
}

// GetError returns the error from the analysis, if any.
func (r *TriageResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple symptom reports concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given concurrency.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessRequests runs all requests through the pool and returns results in
// completion order.
func (b *BatchProcessor) ProcessRequests(ctx context.Context, requests []ReportRequest) []*TriageResult {
	if len(requests) == 0 {
		return []*TriageResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, req := range requests {
		pool.Submit(&TriageJob{
			Request:  req,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()

	triageResults := make([]*TriageResult, len(results))
	for i, result := range results {
		triageResults[i] = result.(*TriageResult)
	}
	return triageResults
}

// ProcessFile reads report requests from a file and analyzes them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*TriageResult, error) {
	requests, err := ReadRequestsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}
	return b.ProcessRequests(ctx, requests), nil
}

// ReadRequestsFromFile reads report requests, one per line. Lines starting
// with "{" are parsed as JSON objects; anything else is treated as free-text
// symptom description. Blank lines and #-comments are skipped.
func ReadRequestsFromFile(filePath string) ([]ReportRequest, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var requests []ReportRequest

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "{") {
			var req ReportRequest
			if err := json.Unmarshal([]byte(line), &req); err != nil {
				return nil, fmt.Errorf("parse line %d: %w", lineNo, err)
			}
			requests = append(requests, req)
			continue
		}

		requests = append(requests, ReportRequest{Text: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return requests, nil
}
