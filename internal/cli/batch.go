package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/healthlinkai/healthlink/internal/rules"
	"github.com/healthlinkai/healthlink/internal/triage"
	"github.com/healthlinkai/healthlink/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchConcurrency int
	batchOutputDir   string
	batchRules       string
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple symptom reports from a file in parallel",
	Long: `Batch analyzes many symptom reports concurrently:
- Read reports from the input file, one per line
- Plain lines are treated as free-text descriptions
- Lines starting with "{" are JSON objects: {"text": "...", "selected": [...]}
- Analyze reports in parallel with a configurable worker count
- Write one assessment JSON per report

Example:
  healthlink batch reports.txt
  healthlink batch reports.txt --concurrency 10 --output-dir ./assessments`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "./healthlink-assessments", "output directory for assessments")
	batchCmd.Flags().StringVar(&batchRules, "rules", "", "rule base YAML path (overrides config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 5*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if batchRules != "" {
		cfg.Rules.Path = batchRules
	}

	ruleStore, err := rules.NewStore(cfg.Rules.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Rule base unavailable (%v), using built-in defaults\n", err)
	}

	if err := os.MkdirAll(batchOutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	checker := triage.NewChecker(ruleStore)
	processor := worker.NewBatchProcessor(checker, batchConcurrency)

	fmt.Fprintf(os.Stderr, "Reading reports from %s\n", file)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Analyzed %d reports with %d workers\n\n", len(results), batchConcurrency)

	successCount := 0
	failureCount := 0

	for i, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %q: %v\n", result.Request.Text, result.Error)
			continue
		}
		successCount++

		data, err := json.MarshalIndent(result.Assessment, "", "  ")
		if err != nil {
			failureCount++
			successCount--
			fmt.Fprintf(os.Stderr, "✗ %q: encode assessment: %v\n", result.Request.Text, err)
			continue
		}

		outPath := filepath.Join(batchOutputDir, fmt.Sprintf("assessment-%03d.json", i+1))
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			failureCount++
			successCount--
			fmt.Fprintf(os.Stderr, "✗ %q: write assessment: %v\n", result.Request.Text, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (risk: %d/100, band: %s)\n",
			outPath, result.Assessment.RiskScore, result.Assessment.RiskBand)
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d  Success: %d  Failures: %d  Output: %s\n",
		len(results), successCount, failureCount, batchOutputDir)

	return nil
}
