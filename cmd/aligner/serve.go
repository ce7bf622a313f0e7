package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/resume-aligner/internal/config"
	"github.com/jonathan/resume-aligner/internal/drafting"
	"github.com/jonathan/resume-aligner/internal/extraction"
	"github.com/jonathan/resume-aligner/internal/fitcheck"
	"github.com/jonathan/resume-aligner/internal/llm"
	"github.com/jonathan/resume-aligner/internal/server"
	"github.com/jonathan/resume-aligner/internal/workflow"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for the guided resume alignment workflow.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides ALIGNER_ADDRESS)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if serveAddr != "" {
		cfg.Server.Address = serveAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	llmCfg := &llm.Config{Models: map[llm.ModelTier]string{
		llm.TierStandard: cfg.LLM.StandardModel,
		llm.TierAdvanced: cfg.LLM.AdvancedModel,
	}}
	client, err := llm.NewGeminiClient(cmd.Context(), llmCfg, cfg.LLM.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}

	controller := workflow.New(
		extraction.New(client),
		fitcheck.New(client),
		drafting.New(client),
		cfg.LLM.GenerateTimeout,
		logger,
	)

	return server.New(cfg, controller, logger).Start()
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
