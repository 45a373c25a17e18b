package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/camila/resume-screener/internal/analysis"
	"github.com/camila/resume-screener/internal/config"
	"github.com/camila/resume-screener/internal/db"
	"github.com/camila/resume-screener/internal/decision"
	"github.com/camila/resume-screener/internal/feedback"
	"github.com/camila/resume-screener/internal/llm"
	"github.com/camila/resume-screener/internal/logger"
	"github.com/camila/resume-screener/internal/mailer"
	"github.com/camila/resume-screener/internal/scoring"
	"github.com/camila/resume-screener/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume screening endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	decisionCfg, err := config.NewDecisionConfig()
	if err != nil {
		return fmt.Errorf("failed to load decision configuration: %w", err)
	}

	sessionCfg, err := config.NewSessionConfig()
	if err != nil {
		return fmt.Errorf("failed to load session configuration: %w", err)
	}

	smtpCfg, err := config.NewSMTPConfig()
	if err != nil {
		return fmt.Errorf("failed to load smtp configuration: %w", err)
	}

	log, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	llmClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.FeedbackModel)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = llmClient.Close() }()

	embedder, err := scoring.NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer func() { _ = embedder.Close() }()

	policy, err := decision.NewPolicy(decisionCfg)
	if err != nil {
		return fmt.Errorf("failed to build decision policy: %w", err)
	}

	var notifier mailer.Notifier = mailer.Nop{}
	if smtpCfg.Enabled() {
		notifier = mailer.NewSMTP(smtpCfg)
		log.Info("contact notifications enabled", zap.String("host", smtpCfg.Host))
	} else {
		log.Info("contact notifications disabled")
	}

	pipeline := analysis.New(
		database,
		scoring.NewScorer(embedder, cfg.ScoringConcurrency),
		feedback.NewGenerator(llmClient),
		policy,
		log,
	)

	srv := server.New(server.Config{
		Port:              cfg.Port,
		AllowedOrigins:    cfg.AllowedOrigins,
		DefaultUsageLimit: cfg.DefaultUsageLimit,
	}, database, pipeline, notifier, server.NewSessionService(sessionCfg), log)

	return srv.Start()
}
