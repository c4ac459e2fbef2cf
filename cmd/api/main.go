package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"catatuang/internal/ai"
	"catatuang/internal/bot"
	"catatuang/internal/config"
	"catatuang/internal/database"
	"catatuang/internal/handlers"
	"catatuang/internal/logger"
	"catatuang/internal/middleware"
	"catatuang/internal/period"
	"catatuang/internal/services"
	"catatuang/internal/session"
	"catatuang/internal/validator"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	clock := period.NewClock(appConfig.TimezoneOffsetHours)

	db := dbManager.DB()
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	userService := services.NewUserService(db, categoryService)
	transactionService := services.NewTransactionService(db, accountService, categoryService, clock)
	summaryService := services.NewSummaryService(db, clock)
	quotaService := services.NewQuotaService(db, clock, appConfig.ChatQuotaLimit, appConfig.ReceiptQuotaLimit)

	parser, err := ai.NewGeminiParser(appConfig.GeminiAPIKeys, appConfig.GeminiModel)
	if err != nil {
		return fmt.Errorf("failed to create AI parser: %w", err)
	}

	telegramBot, err := bot.New(appConfig.TelegramBotToken, bot.Deps{
		Users:        userService,
		Accounts:     accountService,
		Transactions: transactionService,
		Summaries:    summaryService,
		Quotas:       quotaService,
		Parser:       parser,
		Pending:      session.NewPendingReceipts(),
		Index:        session.NewMessageIndex(),
		Clock:        clock,
	})
	if err != nil {
		return fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	validator.Register()

	dashboardHandler := handlers.NewDashboardHandler(accountService, summaryService, clock)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Identity(userService))

	dashboard := v1.Group("/dashboard")
	dashboard.GET("/balance", dashboardHandler.GetBalance)
	dashboard.GET("/summary", dashboardHandler.GetSummary)
	dashboard.GET("/categories", dashboardHandler.GetCategoryBreakdown)
	dashboard.GET("/cashflow", dashboardHandler.GetWeekCashflow)

	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.List)
	transactions.POST("", transactionHandler.Create)
	transactions.DELETE("/:id", transactionHandler.Delete)

	v1.GET("/categories", categoryHandler.List)

	server := &http.Server{
		Addr:    ":" + appConfig.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Infof("Starting HTTP server on port %s", appConfig.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		log.Info("Starting Telegram bot polling")
		telegramBot.Start()
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down...")

		telegramBot.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return group.Wait()
}
