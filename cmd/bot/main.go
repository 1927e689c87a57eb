package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/clintrovert/nudgebot/internal/bot"
	"github.com/clintrovert/nudgebot/internal/clickup"
	"github.com/clintrovert/nudgebot/internal/config"
	"github.com/clintrovert/nudgebot/internal/fetcher"
	"github.com/clintrovert/nudgebot/internal/generator"
	"github.com/clintrovert/nudgebot/internal/slack"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	defer logger.Sync()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	mappings, err := config.LoadUserMappings(cfg.UserMappingFile)
	if err != nil {
		logger.Warn("failed to load user mappings, using defaults", zap.Error(err))
	}

	clickupClient := clickup.NewClient(cfg.ClickUpAPIKey, logger)
	taskFetcher := fetcher.New(clickupClient, cfg, logger)
	msgGenerator := generator.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, mappings, logger)
	sender := slack.NewSender(cfg.SlackBotToken, cfg.SlackChannelID, logger)

	orchestrator := bot.NewOrchestrator(
		taskFetcher,
		msgGenerator,
		sender,
		cfg.PostDelay,
		cfg.SkipWeekends,
		logger,
	)

	logger.Info("starting reminder run")
	if err := orchestrator.Run(context.Background()); err != nil {
		logger.Fatal("reminder run failed", zap.Error(err))
	}
}
