package cli

import (
	"fmt"
	"os"

	"github.com/healthlinkai/healthlink/internal/rules"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rulesPathFlag string

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate the triage rule base",
	Long: `The rule base is a YAML document holding keyword mappings, red-flag
terms, symptom rules, risk bands, disclaimers, and crisis terms. A running
server can hot-reload it via POST /api/rules/reload.`,
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the rule base document",
	Long:  `Parse and validate the rule base YAML, reporting the first problem found.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveRulesPath()
		if path == "" {
			fmt.Println("No rule base configured; built-in defaults are always valid")
			return nil
		}

		if _, err := rules.NewStore(path); err != nil {
			return fmt.Errorf("invalid rule base %s: %w", path, err)
		}
		fmt.Printf("✓ %s is valid\n", path)
		return nil
	},
}

var rulesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective rule base",
	Long: `Display the rule base as the engine sees it after loading and
normalization. Falls back to built-in defaults when the configured file is
missing or invalid.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveRulesPath()
		store, err := rules.NewStore(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Rule base unavailable (%v), showing built-in defaults\n\n", err)
		}

		data, err := yaml.Marshal(store.Current())
		if err != nil {
			return fmt.Errorf("encode rule base: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
	rulesCmd.AddCommand(rulesShowCmd)

	rulesCmd.PersistentFlags().StringVar(&rulesPathFlag, "rules", "", "rule base YAML path (overrides config)")
}

func resolveRulesPath() string {
	if rulesPathFlag != "" {
		return rulesPathFlag
	}
	cfg, err := loadConfig()
	if err != nil {
		return ""
	}
	return cfg.Rules.Path
}
