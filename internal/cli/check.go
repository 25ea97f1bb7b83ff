package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/healthlinkai/healthlink/internal/rules"
	"github.com/healthlinkai/healthlink/internal/triage"
	"github.com/spf13/cobra"
)

var (
	checkRules    string
	checkSymptoms []string
	checkJSONOut  string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [description]",
	Short: "Analyze symptoms and print a risk assessment",
	Long: `Check runs a one-shot symptom analysis:
- Normalize free-text description and selected symptoms
- Screen for red-flag emergency terms
- Match symptom rules and rank likely conditions
- Compute a risk score and band with tailored advice

Example:
  healthlink check "fever and headache for two days"
  healthlink check --symptom fever --symptom cough
  healthlink check "stomach pain" --symptom nausea --json assessment.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkRules, "rules", "", "rule base YAML path (overrides config)")
	checkCmd.Flags().StringArrayVar(&checkSymptoms, "symptom", nil, "selected symptom (repeatable)")
	checkCmd.Flags().StringVar(&checkJSONOut, "json", "", "write assessment JSON to file instead of stdout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if checkRules != "" {
		cfg.Rules.Path = checkRules
	}

	text := ""
	if len(args) == 1 {
		text = args[0]
	}

	ruleStore, err := rules.NewStore(cfg.Rules.Path)
	if err != nil && verbose {
		fmt.Fprintf(os.Stderr, "Rule base unavailable (%v), using built-in defaults\n", err)
	}

	checker := triage.NewChecker(ruleStore)

	assessment, err := checker.Analyze(text, checkSymptoms)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Symptoms analyzed: %v\n", assessment.SymptomsAnalyzed)
		fmt.Fprintf(os.Stderr, "Risk: %d/100 (%s)\n", assessment.RiskScore, assessment.RiskBand)
		if assessment.Emergency {
			fmt.Fprintln(os.Stderr, "EMERGENCY indicators detected")
		}
		fmt.Fprintln(os.Stderr)
	}

	data, err := json.MarshalIndent(assessment, "", "  ")
	if err != nil {
		return fmt.Errorf("encode assessment: %w", err)
	}

	if checkJSONOut != "" {
		if err := os.WriteFile(checkJSONOut, data, 0o644); err != nil {
			return fmt.Errorf("write assessment: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", checkJSONOut)
		return nil
	}

	fmt.Println(string(data))
	return nil
}
