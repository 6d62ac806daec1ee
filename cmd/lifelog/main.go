package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"lifelog/internal/bot"
	"lifelog/internal/classifier"
	"lifelog/internal/config"
	"lifelog/internal/llm"
	"lifelog/internal/logger"
	"lifelog/internal/repository"
	"lifelog/internal/server"
	"lifelog/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer appLog.Sync()

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("open database", "error", err.Error())
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = repository.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := repository.PingRedis(pingCtx, rdb); err != nil {
			appLog.Warn("redis unavailable, classification runs without recent context", "error", err.Error())
			rdb = nil
		}
		cancel()
	}

	llmClient, err := llm.NewClient(llm.ClientConfig{
		BaseURL:    cfg.AnthropicBaseURL,
		APIKey:     cfg.AnthropicAPIKey,
		Model:      cfg.Model,
		Timeout:    cfg.LLMTimeout,
		MaxRetries: cfg.LLMMaxRetries,
	}, appLog)
	if err != nil {
		appLog.Fatal("llm client", "error", err.Error())
	}

	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	foodRepo := repository.NewFoodRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)

	recent := service.NewContextCache(rdb, cfg.ContextWindow, appLog)
	ingestSvc := service.NewIngestService(classifier.New(llmClient), noteRepo, foodRepo, workoutRepo, recent, appLog)
	summarySvc := service.NewSummaryService(foodRepo, workoutRepo, noteRepo, llmClient, appLog)

	metrics := bot.NewMetrics()
	telegramBot, err := bot.New(cfg.TelegramToken, userRepo, noteRepo, ingestSvc, summarySvc, metrics, appLog)
	if err != nil {
		appLog.Fatal("create bot", "error", err.Error())
	}

	if cfg.ReportTime != "" {
		scheduler := service.NewSchedulerService(time.Local)
		if _, err := scheduler.ScheduleDaily(cfg.ReportTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := telegramBot.SendDailyReports(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				appLog.Error("daily reports", "error", err.Error())
			}
		}); err != nil {
			appLog.Fatal("schedule daily reports", "error", err.Error())
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	httpSrv := server.New(cfg, db, rdb, telegramBot, appLog)
	go func() {
		if err := httpSrv.Run(ctx); err != nil {
			appLog.Error("http server", "error", err.Error())
		}
	}()

	appLog.Info("lifelog started", "mode", cfg.BotMode)

	if cfg.BotMode == config.ModePolling {
		if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			appLog.Fatal("bot stopped", "error", err.Error())
		}
	} else {
		<-ctx.Done()
	}

	appLog.Info("shutdown complete")
}
