package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/healthlinkai/healthlink/internal/alert"
	"github.com/healthlinkai/healthlink/internal/logging"
	"github.com/healthlinkai/healthlink/internal/providers"
	"github.com/healthlinkai/healthlink/internal/rules"
	"github.com/healthlinkai/healthlink/internal/sentiment"
	"github.com/healthlinkai/healthlink/internal/server"
	"github.com/healthlinkai/healthlink/internal/store"
	"github.com/healthlinkai/healthlink/internal/triage"
	"github.com/healthlinkai/healthlink/internal/usage"
	"github.com/healthlinkai/healthlink/internal/wellness"
	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	rulesPath   string
	mongoURI    string
	amqpURL     string
	noSentiment bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HealthLink HTTP API",
	Long: `Serve exposes the triage engine over HTTP:
- POST /api/symptoms   symptom analysis
- POST /api/mindwell   wellness chat turn
- GET  /api/providers  nearby provider lookup
- GET  /api/usage      daily usage summary
- POST /api/rules/reload  hot-reload the rule base

Assessment persistence (MongoDB) and emergency alerting (RabbitMQ) are
enabled when their endpoints are configured.

Example:
  healthlink serve
  healthlink serve --addr :9090 --rules ./configs/rules.yaml
  healthlink serve --mongo mongodb://localhost:27017 --amqp amqp://localhost:5672`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&rulesPath, "rules", "", "rule base YAML path (overrides config)")
	serveCmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for assessment persistence")
	serveCmd.Flags().StringVar(&amqpURL, "amqp", "", "RabbitMQ URL for emergency alerts")
	serveCmd.Flags().BoolVar(&noSentiment, "no-sentiment", false, "disable the sentiment analyzer (neutral scores)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if rulesPath != "" {
		cfg.Rules.Path = rulesPath
	}
	if mongoURI != "" {
		cfg.Mongo.URI = mongoURI
	}
	if amqpURL != "" {
		cfg.Alerts.URL = amqpURL
	}
	if noSentiment {
		cfg.Sentiment.Enabled = false
	}

	logging.Init(cfg.Output.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ruleStore, err := rules.NewStore(cfg.Rules.Path)
	if err != nil {
		slog.Warn("rule base unavailable, using built-in defaults",
			"path", cfg.Rules.Path, "error", err)
	}

	var analyzer sentiment.Analyzer
	if cfg.Sentiment.Enabled {
		analyzer = sentiment.NewVADER()
	}

	checker := triage.NewChecker(ruleStore)
	responder := wellness.NewResponder(ruleStore, analyzer)
	directory := providers.NewDirectory(nil)
	meter := usage.NewMeter(cfg.Usage.FreeLimits, cfg.Usage.PremiumUsers)

	var audit *store.Mongo
	if cfg.Mongo.URI != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		audit, err = store.Connect(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database)
		cancel()
		if err != nil {
			return fmt.Errorf("connect mongodb: %w", err)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := audit.Close(closeCtx); err != nil {
				slog.Error("close mongodb", "error", err)
			}
		}()
		slog.Info("assessment persistence enabled", "database", cfg.Mongo.Database)
	}

	var alerts *alert.Publisher
	if cfg.Alerts.URL != "" {
		alerts, err = alert.Dial(cfg.Alerts.URL, cfg.Alerts.Exchange)
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		defer func() {
			if err := alerts.Close(); err != nil {
				slog.Error("close rabbitmq", "error", err)
			}
		}()
		slog.Info("emergency alerting enabled", "exchange", cfg.Alerts.Exchange)
	}

	handler := server.NewHandler(checker, responder, directory, meter, ruleStore, audit, alerts)
	rateLimiter := server.NewIPRateLimiter(cfg.Server.RatePerSecond, cfg.Server.RateBurst)
	mux := server.NewServeMux(handler, rateLimiter, cfg.Server.AllowOrigin)

	return server.Run(ctx, cfg.Server, mux)
}
