package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nurpe/aifa-contracts/internal/assistant"
	"github.com/nurpe/aifa-contracts/internal/auth"
	"github.com/nurpe/aifa-contracts/internal/cache"
	"github.com/nurpe/aifa-contracts/internal/config"
	"github.com/nurpe/aifa-contracts/internal/db"
	"github.com/nurpe/aifa-contracts/internal/excel"
	"github.com/nurpe/aifa-contracts/internal/format"
	httphandler "github.com/nurpe/aifa-contracts/internal/http"
	"github.com/nurpe/aifa-contracts/internal/http/middleware"
	"github.com/nurpe/aifa-contracts/internal/logger"
	"github.com/nurpe/aifa-contracts/internal/pdf"
	"github.com/nurpe/aifa-contracts/internal/repository"
	"github.com/nurpe/aifa-contracts/internal/service"
	"github.com/nurpe/aifa-contracts/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	budgetColumns, err := repository.NewBudgetColumns(cfg.Data.BudgetTable, cfg.Data.BudgetColumns)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid budget column mapping")
	}
	contractRepo := repository.NewContractRepository(database)
	spaceRepo := repository.NewSpaceRepository(database)
	budgetRepo := repository.NewBudgetRepository(database, budgetColumns)

	var userCache cache.UserCache = cache.NopUserCache{}
	if cfg.Redis.Addr != "" {
		client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, user cache disabled")
		} else {
			userCache = cache.NewRedisUserCache(client, cfg.Redis.UserTTL)
		}
		cancel()
	}

	money := format.NewFormatter(cfg.Data.Locale)
	broker := session.NewBroker(16)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	authClient := auth.NewClient(cfg.Auth.URL, cfg.Auth.AnonKey, cfg.Auth.Timeout, log)
	assistantClient := assistant.NewClient(cfg.Assistant, log)
	if cfg.Assistant.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set, assistant answers will report the missing key")
	}

	sessionService := service.NewSessionService(authClient, tokenParser, userCache, broker, log)
	dashboardService := service.NewDashboardService(contractRepo, spaceRepo, budgetRepo, cfg.Data.FallbackEnabled, log)
	budgetService := service.NewBudgetService(budgetRepo, excel.NewGenerator(), pdf.NewGenerator(money), log)
	assistantService := service.NewAssistantService(dashboardService, assistantClient, money, log)

	handler := httphandler.NewHandler(sessionService, dashboardService, budgetService, assistantService, broker, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.HTTP, cfg.Environment, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting contracts service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
