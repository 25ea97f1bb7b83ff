package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/healthlinkai/healthlink/internal/rules"
	"github.com/healthlinkai/healthlink/internal/sentiment"
	"github.com/healthlinkai/healthlink/internal/wellness"
	"github.com/spf13/cobra"
)

var (
	chatRules       string
	chatNoSentiment bool
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Send one message to the wellness companion",
	Long: `Chat runs a single wellness conversation turn:
- Screen for crisis language (takes priority over everything else)
- Detect intents (stress, anxiety, sleep, exam pressure, bullying, loneliness)
- Score sentiment and compose a supportive response
- Suggest guided exercises and resources

Example:
  healthlink chat "I feel so anxious about my exam tomorrow"
  healthlink chat "I can't sleep at night" --no-sentiment`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&chatRules, "rules", "", "rule base YAML path (overrides config)")
	chatCmd.Flags().BoolVar(&chatNoSentiment, "no-sentiment", false, "disable the sentiment analyzer (neutral scores)")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if chatRules != "" {
		cfg.Rules.Path = chatRules
	}
	if chatNoSentiment {
		cfg.Sentiment.Enabled = false
	}

	ruleStore, err := rules.NewStore(cfg.Rules.Path)
	if err != nil && verbose {
		fmt.Fprintf(os.Stderr, "Rule base unavailable (%v), using built-in defaults\n", err)
	}

	var analyzer sentiment.Analyzer
	if cfg.Sentiment.Enabled {
		analyzer = sentiment.NewVADER()
	}

	responder := wellness.NewResponder(ruleStore, analyzer)
	turn := responder.Reply(args[0])

	if verbose {
		fmt.Fprintf(os.Stderr, "Intents: %v\n", turn.IntentsDetected)
		fmt.Fprintf(os.Stderr, "Sentiment compound: %.3f\n", turn.Sentiment.Compound)
		if turn.CrisisDetected {
			fmt.Fprintln(os.Stderr, "CRISIS language detected")
		}
		fmt.Fprintln(os.Stderr)
	}

	data, err := json.MarshalIndent(turn, "", "  ")
	if err != nil {
		return fmt.Errorf("encode turn: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
